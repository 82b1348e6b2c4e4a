package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools/mocks"
)

func newStandardReportHandler(service StandardReporter) *StandardReportHandler {
	return &StandardReportHandler{Service: service, Log: logging.New(logr.Discard())}
}

func TestStandardReportDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockStandardReporter(ctrl)

	reporter.EXPECT().StandardReport(gomock.Any(), "performance", "last_7_days", gomock.Len(0)).
		Return(adjust.NewReport([]byte(`{"rows":[{"app":"Game","partner_name":"Meta","installs":4}]}`)), nil)
	reporter.EXPECT().Presets().Return(adjust.DefaultPresets())

	res, err := newStandardReportHandler(reporter).ToolAdapter(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "## Adjust Performance Report (last_7_days)\n\n"), text)
	assert.Contains(t, text, "Partner: Meta | App: Game\ninstalls: 4")
}

func TestStandardReportAppTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockStandardReporter(ctrl)

	reporter.EXPECT().StandardReport(gomock.Any(), "cohort", "last_30_days", []string{"a1", "b2"}).
		Return(adjust.Report{}, nil)
	reporter.EXPECT().Presets().Return(adjust.DefaultPresets())

	res, err := newStandardReportHandler(reporter).ToolAdapter(context.Background(), callRequest(map[string]any{
		"report_type": "Cohort",
		"date_range":  "last_30_days",
		"app_tokens":  []any{"a1", "b2"},
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "## Adjust Cohort Report (last_30_days)")
}

func TestStandardReportThroughClient(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := adjust.NewClient(adjust.Config{Token: "tok", BaseURL: srv.URL, Logger: logging.New(logr.Discard())})
	require.NoError(t, err)

	res, err := newStandardReportHandler(client).ToolAdapter(context.Background(), callRequest(map[string]any{
		"report_type": "retention",
		"date_range":  "last_7_days",
		"app_tokens":  "",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "## Adjust Retention Report (last_7_days)")
	assert.Contains(t, resultText(t, res), adjust.NoDataMessage)

	assert.Equal(t, "app,partner_name,campaign,day", query.Get("dimensions"))
	assert.Equal(t, "installs,retention_rate_d1,retention_rate_d7,retention_rate_d30", query.Get("metrics"))
	assert.Equal(t, "network", query.Get("ad_spend_mode"))
	assert.NotContains(t, query, "app_token__in")
}

func TestStandardReportUnknownType(t *testing.T) {
	client, err := adjust.NewClient(adjust.Config{Token: "tok", BaseURL: "http://127.0.0.1:1", Logger: logging.New(logr.Discard())})
	require.NoError(t, err)

	res, err := newStandardReportHandler(client).ToolAdapter(context.Background(), callRequest(map[string]any{"report_type": "funnel"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "performance, retention, cohort, revenue")
	assert.NotContains(t, resultText(t, res), "status")
}

func TestStandardReportFetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockStandardReporter(ctrl)
	reporter.EXPECT().StandardReport(gomock.Any(), "revenue", "last_7_days", gomock.Any()).
		Return(adjust.Report{}, &adjust.APIError{StatusCode: 500, Message: "Unknown error", Err: errors.New("dial tcp: connection refused")})

	res, err := newStandardReportHandler(reporter).ToolAdapter(context.Background(), callRequest(map[string]any{"report_type": "revenue"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Failed to fetch Adjust report (status 500): Unknown error (dial tcp: connection refused)", resultText(t, res))
}
