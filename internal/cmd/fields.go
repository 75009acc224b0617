package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/renato0307/dynform/internal/domain"
	"github.com/renato0307/dynform/internal/form"
	"github.com/renato0307/dynform/internal/sample"
)

// FieldsCmd lists the bindable field kinds and where the demo uses them
type FieldsCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type fieldKindInfo struct {
	GoType string   `json:"go_type"`
	Kind   string   `json:"kind"`
	UsedBy []string `json:"used_by"`
}

var kindGoTypes = map[domain.ValueKind]string{
	domain.KindBool:      "bool",
	domain.KindDate:      "time.Time",
	domain.KindDateRange: "domain.DateRange",
	domain.KindDouble:    "float64",
	domain.KindInteger:   "int",
	domain.KindList:      "[]string",
	domain.KindLong:      "int64",
	domain.KindObject:    "any",
	domain.KindString:    "string",
}

// Run executes the fields command
func (f *FieldsCmd) Run(cli *CLI) error {
	contact := form.NewDynamicForm[*sample.Contact](cli.Container.Resources)
	template := sample.ContactTemplate{Groups: cli.Container.Groups}
	if err := template.Build(contact); err != nil {
		return fmt.Errorf("failed to build contact form: %w", err)
	}

	usedBy := make(map[domain.ValueKind][]string)
	for _, input := range contact.Fields() {
		field, err := contact.Field(input)
		if err != nil {
			return err
		}
		if field.Label() != "" {
			usedBy[input.Kind()] = append(usedBy[input.Kind()], field.Label())
		}
	}

	infos := make([]fieldKindInfo, 0, len(domain.SupportedKinds()))
	for _, k := range domain.SupportedKinds() {
		infos = append(infos, fieldKindInfo{
			GoType: kindGoTypes[k],
			Kind:   k.String(),
			UsedBy: usedBy[k],
		})
	}

	if f.Format == "json" {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "Kind\tGo type\tDemo fields")
	fmt.Fprintln(w, "────\t───────\t───────────")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Kind, info.GoType, joinOrDash(info.UsedBy))
	}
	return w.Flush()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
