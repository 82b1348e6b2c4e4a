package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
)

const (
	DefaultMetrics           = "installs,sessions,revenue"
	DefaultAttributionType   = "click"
	DefaultAttributionSource = "dynamic"
	DefaultReattributed      = "all"
	DefaultCurrency          = "USD"
)

var (
	Dimensions = []string{
		"hour", "day", "week", "month", "year", "quarter",
		"os_name", "device_type", "app", "app_token", "store_id", "store_type",
		"currency", "currency_code", "network",
		"campaign", "campaign_network", "campaign_id_network",
		"adgroup", "adgroup_network", "adgroup_id_network", "creative",
		"country", "country_code", "region",
		"partner_name", "partner_id", "channel", "platform",
	}
	CohortMaturities   = []string{"immature", "mature"}
	AttributionTypes   = []string{"click", "impression", "all"}
	AttributionSources = []string{"first", "dynamic"}
	Reattributed       = []string{"all", "false", "true"}
	AdSpendModes       = []string{"adjust", "network", "mixed"}
)

//go:generate mockgen -source=reporting.go -destination=mocks/mock_report_fetcher.go -package=mocks

// ReportFetcher performs a single report request.
type ReportFetcher interface {
	FetchReport(ctx context.Context, q adjust.ReportQuery) (adjust.Report, error)
}

type ReportingHandler struct {
	Service ReportFetcher
	// Now defaults to time.Now and supplies the default report date.
	Now func() time.Time
	Log logging.Logger
}

func (h *ReportingHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.parseQuery(req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	h.Log.Debug("fetching report", "date", q.Date, "date_period", q.DatePeriod, "metrics", q.Metrics, "dimensions", q.Dimensions)
	report, err := h.Service.FetchReport(ctx, q)
	if err != nil {
		h.Log.Error(err, "report fetch failed", "date", q.Date)
		return errorResult(err), nil
	}

	label := q.DatePeriod
	if label == "" {
		label = q.Date
	}
	return mcp.NewToolResultText(FormatReport("Adjust Report for "+label, report)), nil
}

func (h *ReportingHandler) parseQuery(args map[string]any) (adjust.ReportQuery, error) {
	q := adjust.ReportQuery{
		Date:       stringArgument(args["date"]),
		DatePeriod: stringArgument(args["date_period"]),
		Metrics:    listArgument(args["metrics"]),
		Dimensions: listArgument(args["dimensions"]),
		UTCOffset:  stringArgument(args["utc_offset"]),
		Sort:       listArgument(args["sort"]),
		Currency:   stringArgument(args["currency"]),
		AppTokens:  listArgument(args["app_tokens"]),
	}
	if q.Date == "" {
		q.Date = h.now().UTC().Format(time.DateOnly)
	}
	if len(q.Metrics) == 0 {
		q.Metrics = adjust.SplitList(DefaultMetrics)
	}
	if q.Currency == "" {
		q.Currency = DefaultCurrency
	}
	for _, d := range q.Dimensions {
		if !contains(Dimensions, d) {
			return adjust.ReportQuery{}, fmt.Errorf("unsupported dimension %q", d)
		}
	}

	var err error
	if q.FormatDates, err = boolArgument("format_dates", args["format_dates"]); err != nil {
		return adjust.ReportQuery{}, err
	}
	if q.CohortMaturity, err = enumArgument("cohort_maturity", args["cohort_maturity"], "", CohortMaturities); err != nil {
		return adjust.ReportQuery{}, err
	}
	if q.AttributionType, err = enumArgument("attribution_type", args["attribution_type"], DefaultAttributionType, AttributionTypes); err != nil {
		return adjust.ReportQuery{}, err
	}
	if q.AttributionSource, err = enumArgument("attribution_source", args["attribution_source"], DefaultAttributionSource, AttributionSources); err != nil {
		return adjust.ReportQuery{}, err
	}
	if q.Reattributed, err = enumArgument("reattributed", args["reattributed"], DefaultReattributed, Reattributed); err != nil {
		return adjust.ReportQuery{}, err
	}
	if q.AdSpendMode, err = enumArgument("ad_spend_mode", args["ad_spend_mode"], "", AdSpendModes); err != nil {
		return adjust.ReportQuery{}, err
	}
	return q, nil
}

func (h *ReportingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
