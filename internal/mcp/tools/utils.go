package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roivaz/adjust-mcp/internal/adjust"
)

// stringArgument reads a scalar argument as text. Booleans and numbers are
// accepted because some hosts send enum values like "true" unquoted.
func stringArgument(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// listArgument accepts a comma-delimited string or an array of scalars.
func listArgument(value any) []string {
	switch v := value.(type) {
	case string:
		return adjust.SplitList(v)
	case []string:
		return adjust.SplitList(strings.Join(v, ","))
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, stringArgument(item))
		}
		return adjust.SplitList(strings.Join(items, ","))
	default:
		return nil
	}
}

func boolArgument(name string, value any) (*bool, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case bool:
		return &v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", name)
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("%s must be true or false", name)
	}
}

func enumArgument(name string, value any, fallback string, allowed []string) (string, error) {
	s := stringArgument(value)
	if s == "" {
		return fallback, nil
	}
	for _, a := range allowed {
		if s == a {
			return s, nil
		}
	}
	return "", fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, ", "), s)
}
