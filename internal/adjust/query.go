package adjust

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ErrMissingDate is returned for a query that carries neither a date nor a
// date period.
var ErrMissingDate = errors.New("either date or date_period is required")

// ReportQuery holds the options understood by the report endpoint. Zero
// values mean "not set" and are never sent.
type ReportQuery struct {
	Date              string
	DatePeriod        string
	Metrics           []string
	Dimensions        []string
	FormatDates       *bool
	CohortMaturity    string
	UTCOffset         string
	AttributionType   string
	AttributionSource string
	Reattributed      string
	AdSpendMode       string
	Sort              []string
	Currency          string
	AppTokens         []string
}

// Values maps the query onto URL parameters. When DatePeriod is empty the
// Date is sent as the period.
func (q ReportQuery) Values() (url.Values, error) {
	date := strings.TrimSpace(q.Date)
	period := strings.TrimSpace(q.DatePeriod)
	if period == "" {
		period = date
	}
	if period == "" {
		return nil, ErrMissingDate
	}

	v := url.Values{}
	setString(v, "date", date)
	setString(v, "date_period", period)
	setList(v, "metrics", q.Metrics)
	setList(v, "dimensions", q.Dimensions)
	if q.FormatDates != nil {
		v.Set("format_dates", strconv.FormatBool(*q.FormatDates))
	}
	setString(v, "cohort_maturity", q.CohortMaturity)
	setString(v, "utc_offset", q.UTCOffset)
	setString(v, "attribution_type", q.AttributionType)
	setString(v, "attribution_source", q.AttributionSource)
	setString(v, "reattributed", q.Reattributed)
	setString(v, "ad_spend_mode", q.AdSpendMode)
	setList(v, "sort", q.Sort)
	setString(v, "currency", q.Currency)
	setList(v, "app_token__in", q.AppTokens)
	return v, nil
}

// SplitList splits a comma-delimited value, trimming entries and dropping
// empty ones.
func SplitList(s string) []string {
	return cleanList(strings.Split(s, ","))
}

// JoinList collapses a list to its comma-joined wire form.
func JoinList(items []string) string {
	return strings.Join(cleanList(items), ",")
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func setString(v url.Values, key, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		v.Set(key, trimmed)
	}
}

func setList(v url.Values, key string, items []string) {
	if joined := JoinList(items); joined != "" {
		v.Set(key, joined)
	}
}
