package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
)

const (
	DefaultReportType = "performance"
	DefaultDateRange  = "last_7_days"
)

//go:generate mockgen -source=standard_report.go -destination=mocks/mock_standard_reporter.go -package=mocks

// StandardReporter fetches preset reports.
type StandardReporter interface {
	Presets() adjust.Presets
	StandardReport(ctx context.Context, reportType, dateRange string, appTokens []string) (adjust.Report, error)
}

type StandardReportHandler struct {
	Service StandardReporter
	Log     logging.Logger
}

func (h *StandardReportHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	reportType := strings.ToLower(stringArgument(args["report_type"]))
	if reportType == "" {
		reportType = DefaultReportType
	}
	dateRange := stringArgument(args["date_range"])
	if dateRange == "" {
		dateRange = DefaultDateRange
	}
	appTokens := listArgument(args["app_tokens"])

	h.Log.Debug("fetching standard report", "report_type", reportType, "date_range", dateRange, "app_tokens", len(appTokens))
	report, err := h.Service.StandardReport(ctx, reportType, dateRange, appTokens)
	if errors.Is(err, adjust.ErrUnknownReportType) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		h.Log.Error(err, "standard report fetch failed", "report_type", reportType)
		return errorResult(err), nil
	}
	preset, _ := h.Service.Presets().Get(reportType)

	return mcp.NewToolResultText(FormatReport(StandardReportTitle(preset, dateRange), report)), nil
}

// StandardReportTitle is the heading used for a preset report.
func StandardReportTitle(p adjust.Preset, dateRange string) string {
	return fmt.Sprintf("Adjust %s Report (%s)", p.Title, dateRange)
}
