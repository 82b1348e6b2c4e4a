package adjust

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Report is a response body from the report endpoint. The shape is not
// guaranteed upstream, so fields are read on demand and anything missing or
// malformed reads as empty.
type Report struct {
	raw []byte
}

// NewReport wraps a response body.
func NewReport(raw []byte) Report {
	return Report{raw: raw}
}

// Raw returns the body exactly as received.
func (r Report) Raw() []byte { return r.raw }

func (r Report) root() gjson.Result {
	if len(r.raw) == 0 || !gjson.ValidBytes(r.raw) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(r.raw)
}

// IsEmpty reports whether the body is absent, null, malformed, or an empty
// object.
func (r Report) IsEmpty() bool {
	root := r.root()
	if !root.IsObject() {
		return true
	}
	empty := true
	root.ForEach(func(_, _ gjson.Result) bool {
		empty = false
		return false
	})
	return empty
}

// Rows returns the object entries of the rows array.
func (r Report) Rows() []gjson.Result {
	rows := r.root().Get("rows")
	if !rows.IsArray() {
		return nil
	}
	var out []gjson.Result
	for _, row := range rows.Array() {
		if row.IsObject() {
			out = append(out, row)
		}
	}
	return out
}

// Totals returns the totals object, or an empty result when absent.
func (r Report) Totals() gjson.Result {
	totals := r.root().Get("totals")
	if !totals.IsObject() {
		return gjson.Result{}
	}
	return totals
}

// Warnings returns the string entries of the warnings array.
func (r Report) Warnings() []string {
	warnings := r.root().Get("warnings")
	if !warnings.IsArray() {
		return nil
	}
	var out []string
	for _, w := range warnings.Array() {
		if s := w.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Pretty returns the body indented for display, or the raw text when it is
// not valid JSON.
func (r Report) Pretty() string {
	if len(r.raw) == 0 {
		return "null"
	}
	if !gjson.ValidBytes(r.raw) {
		return string(r.raw)
	}
	out := pretty.PrettyOptions(r.raw, &pretty.Options{Width: 80, Indent: "  "})
	return strings.TrimRight(string(out), "\n")
}
