package mcp

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools"
)

const (
	ServerName    = "adjust"
	ServerVersion = "1.0.0"

	ToolReporting      = "reporting"
	ToolStandardReport = "standard-report"
)

type ToolAdapter interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

type Server struct {
	MCP     *server.MCPServer
	Handler http.Handler
	log     logging.Logger
}

func New(cfg Config) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	toolDefinitions := ToolDefinitions(cfg.Presets)
	for name, adapter := range cfg.ToolAdapters {
		tool, ok := toolDefinitions[name]
		if !ok {
			cfg.Logger.Info("skipping adapter without tool definition", "tool", name)
			continue
		}
		mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return adapter.ToolAdapter(ctx, req)
		})
	}

	return &Server{
		MCP:     mcpServer,
		Handler: server.NewStreamableHTTPServer(mcpServer, cfg.Options...),
		log:     cfg.Logger,
	}
}

// ToolDefinitions returns the schemas of every tool the server can expose.
func ToolDefinitions(presets adjust.Presets) map[string]mcp.Tool {
	reportTypes := presets.Names()
	if len(reportTypes) == 0 {
		reportTypes = adjust.DefaultPresets().Names()
	}
	return map[string]mcp.Tool{
		ToolReporting: mcp.NewTool(ToolReporting,
			mcp.WithDescription("Fetch an Adjust report for a date or date period. Returns a readable summary of totals and rows followed by the raw JSON payload."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
			mcp.WithString("date",
				mcp.Description("Date for the report in YYYY-MM-DD format (default: today, UTC)"),
			),
			mcp.WithString("metrics",
				mcp.Description("Comma-separated list of metrics to include"),
				mcp.DefaultString(tools.DefaultMetrics),
			),
			mcp.WithString("dimensions",
				mcp.Description("Comma-separated list of dimensions to group by. Allowed: "+strings.Join(tools.Dimensions, ", ")),
			),
			mcp.WithBoolean("format_dates",
				mcp.Description("Format dates in the response as ISO dates"),
			),
			mcp.WithString("date_period",
				mcp.Description("Date period, e.g. 2024-01-01:2024-01-31 or last_7_days (default: the value of date)"),
			),
			mcp.WithString("cohort_maturity",
				mcp.Description("Cohort maturity filter"),
				mcp.Enum(tools.CohortMaturities...),
			),
			mcp.WithString("utc_offset",
				mcp.Description("UTC offset applied to dates, e.g. +01:00"),
			),
			mcp.WithString("attribution_type",
				mcp.Description("Attribution type"),
				mcp.Enum(tools.AttributionTypes...),
				mcp.DefaultString(tools.DefaultAttributionType),
			),
			mcp.WithString("attribution_source",
				mcp.Description("Attribution source"),
				mcp.Enum(tools.AttributionSources...),
				mcp.DefaultString(tools.DefaultAttributionSource),
			),
			mcp.WithString("reattributed",
				mcp.Description("Reattribution filter"),
				mcp.Enum(tools.Reattributed...),
				mcp.DefaultString(tools.DefaultReattributed),
			),
			mcp.WithString("ad_spend_mode",
				mcp.Description("Source of ad spend data"),
				mcp.Enum(tools.AdSpendModes...),
			),
			mcp.WithString("sort",
				mcp.Description("Comma-separated sort fields, prefix with - for descending"),
			),
			mcp.WithString("currency",
				mcp.Description("Currency code for monetary metrics"),
				mcp.DefaultString(tools.DefaultCurrency),
			),
			mcp.WithString("app_tokens",
				mcp.Description("Optional: comma-separated app tokens to filter by"),
			),
		),
		ToolStandardReport: mcp.NewTool(ToolStandardReport,
			mcp.WithDescription("Fetch a predefined Adjust report (performance, retention, cohort or revenue) with a fixed set of metrics and dimensions."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(true),
			mcp.WithString("app_tokens",
				mcp.Description("Comma-separated app tokens to filter by (default: all apps)"),
				mcp.DefaultString(""),
			),
			mcp.WithString("date_range",
				mcp.Description("Date period, e.g. last_7_days or 2024-01-01:2024-01-31"),
				mcp.DefaultString(tools.DefaultDateRange),
			),
			mcp.WithString("report_type",
				mcp.Description("Type of standard report"),
				mcp.Enum(reportTypes...),
				mcp.DefaultString(tools.DefaultReportType),
			),
		),
	}
}

// ServeStdio serves MCP over stdin/stdout until ctx is cancelled or the
// input stream closes.
func (s *Server) ServeStdio(ctx context.Context, errLog *log.Logger) error {
	return s.serveStdio(ctx, errLog, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, errLog *log.Logger, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.MCP)
	if errLog != nil {
		stdio.SetErrorLogger(errLog)
	}
	s.log.Info("serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// ServeHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("MCP server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
