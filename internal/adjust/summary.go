package adjust

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// NoDataMessage is the summary of a report without rows.
const NoDataMessage = "No data available for analysis."

// titleFields are the dimensions used to label a row, in display order.
var titleFields = []struct {
	key   string
	label string
}{
	{"campaign", "Campaign"},
	{"partner_name", "Partner"},
	{"app", "App"},
	{"country", "Country"},
	{"os_name", "OS"},
}

// dimensionFields are row keys that are never rendered as metrics.
var dimensionFields = map[string]struct{}{
	"app":                 {},
	"partner_name":        {},
	"campaign":            {},
	"campaign_id_network": {},
	"campaign_network":    {},
	"adgroup":             {},
	"creative":            {},
	"country":             {},
	"os_name":             {},
	"day":                 {},
	"week":                {},
	"month":               {},
	"year":                {},
	"attr_dependency":     {},
}

// Summarize renders totals, rows and warnings of a report as plain text.
func Summarize(r Report) string {
	rows := r.Rows()
	if r.IsEmpty() || len(rows) == 0 {
		return NoDataMessage
	}

	var sections []string

	var totals []string
	r.Totals().ForEach(func(key, value gjson.Result) bool {
		totals = append(totals, fmt.Sprintf("Total %s: %s", key.String(), value.String()))
		return true
	})
	if len(totals) > 0 {
		sections = append(sections, strings.Join(totals, "\n"))
	}

	for i, row := range rows {
		lines := []string{rowTitle(row, i)}
		row.ForEach(func(key, value gjson.Result) bool {
			if _, skip := dimensionFields[key.String()]; !skip {
				lines = append(lines, fmt.Sprintf("%s: %s", key.String(), value.String()))
			}
			return true
		})
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if warnings := r.Warnings(); len(warnings) > 0 {
		lines := []string{"Warnings:"}
		for _, w := range warnings {
			lines = append(lines, "- "+w)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func rowTitle(row gjson.Result, index int) string {
	var parts []string
	for _, f := range titleFields {
		if v := row.Get(f.key); v.Exists() && v.String() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", f.label, v.String()))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Row %d", index+1)
	}
	return strings.Join(parts, " | ")
}
