package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"powerboard/internal/domain"
)

// RegisterWriteTools adds the display-order mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(setOrderTool(), setOrderHandler(deps))
	s.AddTool(resetOrderTool(), resetOrderHandler(deps))
}

// --- set_display_order ---

func setOrderTool() mcp.Tool {
	return mcp.NewTool("set_display_order",
		mcp.WithDescription("Save a custom character display order. The order must list every character ID exactly once."),
		mcp.WithString("ids",
			mcp.Description("Comma-separated character IDs in the desired order"),
			mcp.Required(),
		),
	)
}

func setOrderHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetString("ids", "")
		if raw == "" {
			return toolError(fmt.Errorf("ids is required"))
		}

		var order domain.DisplayOrder
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				order = append(order, id)
			}
		}

		set, err := deps.fetchSet(ctx)
		if err != nil {
			return toolError(err)
		}
		if !order.Validate(set) {
			return toolError(fmt.Errorf("order %v is not a permutation of the current roster %v", order, set.IDs()))
		}

		if err := deps.Orders.SaveDisplayOrder(order); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Display order saved."), nil
	}
}

// --- reset_display_order ---

func resetOrderTool() mcp.Tool {
	return mcp.NewTool("reset_display_order",
		mcp.WithDescription("Discard the custom display order, reverting to most recently played first."),
	)
}

func resetOrderHandler(deps Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := deps.Orders.ClearDisplayOrder(); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Display order reset."), nil
	}
}
