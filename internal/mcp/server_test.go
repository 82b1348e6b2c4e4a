package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools/mocks"
)

func TestToolDefinitions(t *testing.T) {
	defs := ToolDefinitions(adjust.DefaultPresets())
	require.Len(t, defs, 2)

	reporting := defs[ToolReporting]
	assert.Equal(t, ToolReporting, reporting.Name)
	for _, key := range []string{"date", "metrics", "dimensions", "format_dates", "date_period", "cohort_maturity", "utc_offset",
		"attribution_type", "attribution_source", "reattributed", "ad_spend_mode", "sort", "currency", "app_tokens"} {
		assert.Contains(t, reporting.InputSchema.Properties, key)
	}
	assert.Empty(t, reporting.InputSchema.Required)

	standard := defs[ToolStandardReport]
	for _, key := range []string{"app_tokens", "date_range", "report_type"} {
		assert.Contains(t, standard.InputSchema.Properties, key)
	}
	reportType, ok := standard.InputSchema.Properties["report_type"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"performance", "retention", "cohort", "revenue"}, reportType["enum"])
	assert.Equal(t, "performance", reportType["default"])
}

func TestToolDefinitionsFallBackToDefaultPresets(t *testing.T) {
	defs := ToolDefinitions(adjust.Presets{})
	reportType := defs[ToolStandardReport].InputSchema.Properties["report_type"].(map[string]any)
	assert.ElementsMatch(t, []string{"performance", "retention", "cohort", "revenue"}, reportType["enum"])
}

func newTestServer(t *testing.T, fetcher tools.ReportFetcher, reporter tools.StandardReporter) *Server {
	t.Helper()
	log := logging.New(logr.Discard())
	return New(Config{
		ToolAdapters: map[string]ToolAdapter{
			ToolReporting:      &tools.ReportingHandler{Service: fetcher, Log: log},
			ToolStandardReport: &tools.StandardReportHandler{Service: reporter, Log: log},
			"unknown":          &tools.ReportingHandler{Service: fetcher, Log: log},
		},
		Presets: adjust.DefaultPresets(),
		Logger:  log,
	})
}

func handle(t *testing.T, s *Server, message string) string {
	t.Helper()
	resp := s.MCP.HandleMessage(context.Background(), json.RawMessage(message))
	require.NotNil(t, resp)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

func TestServerListsTools(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockReportFetcher(ctrl), mocks.NewMockStandardReporter(ctrl))

	out := handle(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
	assert.Contains(t, out, `"name":"reporting"`)
	assert.Contains(t, out, `"name":"standard-report"`)
	assert.NotContains(t, out, `"name":"unknown"`)
}

func TestServerCallsReportingTool(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockReportFetcher(ctrl)
	fetcher.EXPECT().FetchReport(gomock.Any(), gomock.Any()).
		Return(adjust.NewReport([]byte(`{"rows":[{"campaign":"X","installs":10}],"totals":{"installs":10}}`)), nil)
	s := newTestServer(t, fetcher, mocks.NewMockStandardReporter(ctrl))

	out := handle(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"reporting","arguments":{"date":"2024-03-10"}}}`)
	assert.Contains(t, out, "Adjust Report for 2024-03-10")
	assert.Contains(t, out, "Total installs: 10")
	assert.NotContains(t, out, `"isError":true`)
}

func TestServerReportsToolErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockStandardReporter(ctrl)
	reporter.EXPECT().StandardReport(gomock.Any(), "retention", "last_7_days", gomock.Any()).
		Return(adjust.Report{}, &adjust.APIError{StatusCode: 429, Message: "Too many requests: slow down"})
	s := newTestServer(t, mocks.NewMockReportFetcher(ctrl), reporter)

	out := handle(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"standard-report","arguments":{"report_type":"retention"}}}`)
	assert.Contains(t, out, `"isError":true`)
	assert.Contains(t, out, "status 429")
	assert.Contains(t, out, "Too many requests")
}

func TestServeStdioListsTools(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockReportFetcher(ctrl), mocks.NewMockStandardReporter(ctrl))

	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list","params":{}}`,
	}, "\n") + "\n")
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.serveStdio(ctx, log.New(io.Discard, "", 0), in, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"serverInfo"`)
	assert.Contains(t, lines[0], `"name":"adjust"`)
	assert.Contains(t, lines[1], `"id":2`)
	assert.Contains(t, lines[1], `"name":"reporting"`)
	assert.Contains(t, lines[1], `"name":"standard-report"`)
}

func TestServeStdioStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestServer(t, mocks.NewMockReportFetcher(ctrl), mocks.NewMockStandardReporter(ctrl))

	in, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.serveStdio(ctx, nil, in, io.Discard) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stdio server did not stop after cancel")
	}
}

func TestDefaultConfig(t *testing.T) {
	client, err := adjust.NewClient(adjust.Config{Token: "tok", Logger: logging.New(logr.Discard())})
	require.NoError(t, err)

	cfg := DefaultConfig(client, logging.New(logr.Discard()))
	assert.Contains(t, cfg.ToolAdapters, ToolReporting)
	assert.Contains(t, cfg.ToolAdapters, ToolStandardReport)
	assert.Equal(t, client.Presets().Names(), cfg.Presets.Names())

	s := New(cfg)
	assert.NotNil(t, s.MCP)
	assert.NotNil(t, s.Handler)
}
