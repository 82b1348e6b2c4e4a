package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/adjust-mcp/internal/adjust"
	"github.com/roivaz/adjust-mcp/internal/logging"
	"github.com/roivaz/adjust-mcp/internal/mcp/tools"
)

type Config struct {
	ToolAdapters map[string]ToolAdapter
	Presets      adjust.Presets
	Options      []server.StreamableHTTPOption
	Logger       logging.Logger
}

// DefaultConfig wires both tools to client.
func DefaultConfig(client *adjust.Client, log logging.Logger) Config {
	toolLog := log.WithName("tools")
	return Config{
		ToolAdapters: map[string]ToolAdapter{
			ToolReporting: &tools.ReportingHandler{
				Service: client,
				Now:     time.Now,
				Log:     toolLog.WithName(ToolReporting),
			},
			ToolStandardReport: &tools.StandardReportHandler{
				Service: client,
				Log:     toolLog.WithName(ToolStandardReport),
			},
		},
		Presets: client.Presets(),
		Options: []server.StreamableHTTPOption{
			server.WithEndpointPath("/mcp"),
			server.WithStateLess(true),
		},
		Logger: log.WithName("mcp"),
	}
}
