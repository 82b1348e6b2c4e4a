package adjust

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"sigs.k8s.io/yaml"
)

// ErrUnknownReportType is returned for a report type with no preset.
var ErrUnknownReportType = errors.New("unknown report type")

// DefaultAdSpendMode is applied to presets that do not set their own.
const DefaultAdSpendMode = "network"

//go:embed presets.yaml
var defaultPresetsYAML []byte

// builtinOrder keeps the shipped report types first in listings.
var builtinOrder = []string{"performance", "retention", "cohort", "revenue"}

// Preset is the fixed metric and dimension selection of a standard report.
type Preset struct {
	Title       string   `json:"title"`
	Metrics     []string `json:"metrics"`
	Dimensions  []string `json:"dimensions"`
	AdSpendMode string   `json:"ad_spend_mode,omitempty"`
}

// Presets is an immutable set of report types.
type Presets struct {
	byName map[string]Preset
	order  []string
}

// DefaultPresets returns the shipped report types.
func DefaultPresets() Presets {
	p, err := parsePresets(defaultPresetsYAML, Presets{})
	if err != nil {
		panic(fmt.Sprintf("embedded presets: %v", err))
	}
	return p
}

// LoadPresets returns the shipped report types overlaid with the ones defined
// in path. An empty path yields the defaults.
func LoadPresets(path string) (Presets, error) {
	base := DefaultPresets()
	if strings.TrimSpace(path) == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Presets{}, fmt.Errorf("read presets file: %w", err)
	}
	p, err := parsePresets(data, base)
	if err != nil {
		return Presets{}, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	return p, nil
}

func parsePresets(data []byte, base Presets) (Presets, error) {
	var parsed map[string]Preset
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Presets{}, err
	}

	merged := make(map[string]Preset, len(base.byName)+len(parsed))
	for name, p := range base.byName {
		merged[name] = p
	}
	for name, p := range parsed {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return Presets{}, errors.New("report type name must not be empty")
		}
		p.Metrics = cleanList(p.Metrics)
		p.Dimensions = cleanList(p.Dimensions)
		if len(p.Metrics) == 0 {
			return Presets{}, fmt.Errorf("report type %q has no metrics", name)
		}
		if p.Title == "" {
			first, size := utf8.DecodeRuneInString(name)
			p.Title = string(unicode.ToUpper(first)) + name[size:]
		}
		if p.AdSpendMode == "" {
			p.AdSpendMode = DefaultAdSpendMode
		}
		merged[name] = p
	}

	return Presets{byName: merged, order: orderNames(merged)}, nil
}

func orderNames(m map[string]Preset) []string {
	names := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range builtinOrder {
		if _, ok := m[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range m {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// Names lists the report types, shipped ones first.
func (p Presets) Names() []string {
	return append([]string(nil), p.order...)
}

// Get returns the preset for a report type.
func (p Presets) Get(reportType string) (Preset, bool) {
	preset, ok := p.byName[strings.ToLower(strings.TrimSpace(reportType))]
	return preset, ok
}

// Query builds the report query for a standard report over dateRange.
func (p Presets) Query(reportType, dateRange string, appTokens []string) (ReportQuery, error) {
	preset, ok := p.Get(reportType)
	if !ok {
		return ReportQuery{}, fmt.Errorf("%w %q: valid types are %s", ErrUnknownReportType, reportType, strings.Join(p.order, ", "))
	}
	return ReportQuery{
		DatePeriod:  dateRange,
		Metrics:     append([]string(nil), preset.Metrics...),
		Dimensions:  append([]string(nil), preset.Dimensions...),
		AdSpendMode: preset.AdSpendMode,
		AppTokens:   cleanList(appTokens),
	}, nil
}
