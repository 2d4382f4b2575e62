package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/marketdata"
	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
)

// registerEditorTools wires the editor tool set into the MCP server and
// returns the number of registered tools.
func registerEditorTools(srv *mcpserver.MCPServer, ctrl *report.Controller, market *marketdata.Service) int {
	count := 0
	add := func(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
		srv.AddTool(tool, handler)
		count++
	}

	add(mcp.NewTool("get_report",
		mcp.WithDescription("Get the current report document as JSON, including mode, indicators, sectors, themes and schedule."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return documentResult(ctrl)
	})

	add(mcp.NewTool("update_report",
		mcp.WithDescription("Replace the report document. Takes the full document JSON as returned by get_report; the change becomes one undoable step."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Full report document JSON")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := r.RequireString("document")
		if err != nil {
			return errorResult("document parameter is required"), nil
		}
		var doc models.Report
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return errorResult("invalid document JSON: " + err.Error()), nil
		}
		ctrl.OnChange(doc)
		return documentResult(ctrl)
	})

	add(mcp.NewTool("switch_mode",
		mcp.WithDescription("Switch between the pre-market and close report modes. US market, expert view and schedule carry over."),
		mcp.WithString("mode", mcp.Required(), mcp.Description("Target mode: premarket or close")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := r.RequireString("mode")
		if err != nil {
			return errorResult("mode parameter is required"), nil
		}
		mode := models.ReportType(raw)
		if !mode.Valid() {
			return errorResult("unknown mode: " + raw), nil
		}
		if err := ctrl.SwitchMode(ctx, mode); err != nil {
			return errorResult(err.Error()), nil
		}
		return documentResult(ctrl)
	})

	add(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last document change."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.Undo()
		return documentResult(ctrl)
	})

	add(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone document change."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.Redo()
		return documentResult(ctrl)
	})

	add(mcp.NewTool("save_report",
		mcp.WithDescription("Persist the current document and record a recent-saves snapshot."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.Save(ctx)
		return textResult("saved"), nil
	})

	add(mcp.NewTool("add_sector",
		mcp.WithDescription("Append an empty sector card to the report."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.AddSector()
		return documentResult(ctrl)
	})

	add(mcp.NewTool("remove_sector",
		mcp.WithDescription("Remove a sector card by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Sector id from get_report")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := r.RequireString("id")
		if err != nil {
			return errorResult("id parameter is required"), nil
		}
		ctrl.RemoveSector(id)
		return documentResult(ctrl)
	})

	add(mcp.NewTool("add_theme",
		mcp.WithDescription("Append an empty theme group to the report."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.AddTheme()
		return documentResult(ctrl)
	})

	add(mcp.NewTool("remove_theme",
		mcp.WithDescription("Remove a theme group by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Theme id from get_report")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := r.RequireString("id")
		if err != nil {
			return errorResult("id parameter is required"), nil
		}
		ctrl.RemoveTheme(id)
		return documentResult(ctrl)
	})

	add(mcp.NewTool("add_theme_stock",
		mcp.WithDescription("Append an empty stock row to a theme group."),
		mcp.WithString("theme_id", mcp.Required(), mcp.Description("Theme id from get_report")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := r.RequireString("theme_id")
		if err != nil {
			return errorResult("theme_id parameter is required"), nil
		}
		ctrl.AddThemeStock(id)
		return documentResult(ctrl)
	})

	add(mcp.NewTool("remove_theme_stock",
		mcp.WithDescription("Remove a stock row from a theme group by position."),
		mcp.WithString("theme_id", mcp.Required(), mcp.Description("Theme id from get_report")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based stock row index")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := r.RequireString("theme_id")
		if err != nil {
			return errorResult("theme_id parameter is required"), nil
		}
		ctrl.RemoveThemeStock(id, r.GetInt("index", -1))
		return documentResult(ctrl)
	})

	add(mcp.NewTool("add_schedule_item",
		mcp.WithDescription("Append an empty row to the schedule table."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctrl.AddScheduleItem()
		return documentResult(ctrl)
	})

	add(mcp.NewTool("remove_schedule_item",
		mcp.WithDescription("Remove a schedule row by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Schedule row id from get_report")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := r.RequireString("id")
		if err != nil {
			return errorResult("id parameter is required"), nil
		}
		ctrl.RemoveScheduleItem(id)
		return documentResult(ctrl)
	})

	add(mcp.NewTool("list_recent_saves",
		mcp.WithDescription("List the recent-saves history for the current mode, newest first."),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type entry struct {
			Index   int    `json:"index"`
			SavedAt string `json:"savedAt"`
			Title   string `json:"title"`
		}
		var out []entry
		for i, s := range ctrl.Recent() {
			out = append(out, entry{
				Index:   i,
				SavedAt: s.SavedAt,
				Title:   s.Report.Title,
			})
		}
		raw, err := json.Marshal(out)
		if err != nil {
			return errorResult("failed to marshal recent saves"), nil
		}
		return textResult(string(raw)), nil
	})

	add(mcp.NewTool("restore_recent_save",
		mcp.WithDescription("Restore a recent-saves entry as the live document, starting a fresh undo history."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Index from list_recent_saves")),
	), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := ctrl.RestoreFromHistory(r.GetInt("index", -1)); err != nil {
			return errorResult(err.Error()), nil
		}
		return documentResult(ctrl)
	})

	if market != nil {
		add(mcp.NewTool("refresh_market_data",
			mcp.WithDescription("Refresh the indicator strips with live index quotes and the won/dollar rate."),
		), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if err := market.Refresh(ctx); err != nil {
				return errorResult("market data refresh failed: " + err.Error()), nil
			}
			return documentResult(ctrl)
		})

		add(mcp.NewTool("lookup_symbol",
			mcp.WithDescription("Look up Korean stock symbols by name or code."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Partial stock name or code")),
		), func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			q, err := r.RequireString("query")
			if err != nil {
				return errorResult("query parameter is required"), nil
			}
			symbols, err := market.Lookup(ctx, q)
			if err != nil {
				return errorResult("symbol lookup failed: " + err.Error()), nil
			}
			raw, err := json.Marshal(symbols)
			if err != nil {
				return errorResult("failed to marshal symbols"), nil
			}
			return textResult(string(raw)), nil
		})
	}

	return count
}

func documentResult(ctrl *report.Controller) (*mcp.CallToolResult, error) {
	doc := ctrl.Document()
	raw, err := json.Marshal(doc)
	if err != nil {
		return errorResult("failed to marshal document"), nil
	}
	return textResult(string(raw)), nil
}

// versionTool returns the mcp.Tool definition for the get_version tool.
func versionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the rising-report server version. Use this to verify connectivity."),
	)
}

func versionToolHandler() mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := json.Marshal(map[string]string{
			"version": common.GetVersion(),
			"build":   common.GetBuild(),
			"commit":  common.GetGitCommit(),
		})
		if err != nil {
			return errorResult("failed to marshal version info"), nil
		}
		return textResult(string(out)), nil
	}
}
