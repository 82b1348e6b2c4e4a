package tools

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/adjust-mcp/internal/adjust"
)

// FormatReport renders a report as Markdown: a heading, the summary, and
// the payload in a fenced JSON block.
func FormatReport(title string, r adjust.Report) string {
	return fmt.Sprintf("## %s\n\n%s\n\n```json\n%s\n```", title, adjust.Summarize(r), r.Pretty())
}

// FormatError renders a failed report fetch for the caller.
func FormatError(err error) string {
	var apiErr *adjust.APIError
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("Failed to fetch Adjust report (status %d): %s", apiErr.StatusCode, apiErr.Message)
		if apiErr.Detail != "" && apiErr.Detail != apiErr.Message {
			msg += " - " + apiErr.Detail
		}
		if apiErr.Err != nil {
			msg += " (" + apiErr.Err.Error() + ")"
		}
		return msg
	}
	return "Failed to fetch Adjust report: " + err.Error()
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(FormatError(err))
}
