package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

// Deps are the collaborators the MCP tools work against.
type Deps struct {
	Auth     ports.AuthGateway
	Source   ports.CharacterSource
	Manifest ports.ManifestService
	Orders   ports.OrderStore
}

// RegisterReadTools adds all read-only power tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(charactersTool(), charactersHandler(deps))
	s.AddTool(powerSummaryTool(), powerSummaryHandler(deps))
	s.AddTool(displayOrderTool(), displayOrderHandler(deps))
	s.AddTool(manifestVersionTool(), manifestVersionHandler(deps))
}

// --- characters ---

func charactersTool() mcp.Tool {
	return mcp.NewTool("characters",
		mcp.WithDescription("List the account's characters with their power levels. Optionally filter to one character by ID."),
		mcp.WithString("character_id",
			mcp.Description("Character ID to show. Omit to list all characters."),
		),
	)
}

func charactersHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		set, err := deps.fetchSet(ctx)
		if err != nil {
			return toolError(err)
		}

		if id := req.GetString("character_id", ""); id != "" {
			snap, found := set.ByID(id)
			if !found {
				return toolError(fmt.Errorf("no character with ID %s", id))
			}
			return mcp.NewToolResultText(formatSnapshot(snap)), nil
		}

		if len(set) == 0 {
			return mcp.NewToolResultText("No characters."), nil
		}
		var sb strings.Builder
		for _, snap := range set {
			sb.WriteString(formatSnapshot(snap))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- power_summary ---

func powerSummaryTool() mcp.Tool {
	return mcp.NewTool("power_summary",
		mcp.WithDescription("Account-wide power summary: highest light, artifact bonus, and total."),
	)
}

func powerSummaryHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		set, err := deps.fetchSet(ctx)
		if err != nil {
			return toolError(err)
		}
		agg := set.Aggregates()
		return mcp.NewToolResultText(fmt.Sprintf(
			"Power %d (+%d artifact) = %d", agg.Overall, agg.Artifact, agg.Total)), nil
	}
}

// --- display_order ---

func displayOrderTool() mcp.Tool {
	return mcp.NewTool("display_order",
		mcp.WithDescription("Show the effective character display order: the saved custom order when it still matches the roster, otherwise most recently played first."),
	)
}

func displayOrderHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		set, err := deps.fetchSet(ctx)
		if err != nil {
			return toolError(err)
		}

		order, custom, err := effectiveOrder(deps.Orders, set)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if custom {
			sb.WriteString("Custom order:\n")
		} else {
			sb.WriteString("Default order (most recently played first):\n")
		}
		for i, id := range order {
			snap, found := set.ByID(id)
			if !found {
				continue
			}
			fmt.Fprintf(&sb, "%d. %s  %s\n", i+1, snap.Class, id)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- manifest_version ---

func manifestVersionTool() mcp.Tool {
	return mcp.NewTool("manifest_version",
		mcp.WithDescription("Current Destiny manifest version, fetching it if the cache is stale."),
	)
}

func manifestVersionHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		manifest, err := deps.Manifest.GetManifest(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(manifest.Version), nil
	}
}

// --- helpers ---

// fetchSet refreshes auth from the stored token and pulls a fresh snapshot
// set. Interactive sign-in is out of reach over stdio; a missing token tells
// the caller to sign in through the TUI first.
func (d Deps) fetchSet(ctx context.Context) (domain.SnapshotSet, error) {
	authed, err := d.Auth.Auth(ctx)
	if err != nil {
		return nil, err
	}
	if !authed {
		return nil, fmt.Errorf("not signed in: run powerboard and press r to sign in")
	}

	var set domain.SnapshotSet
	err = d.Source.GetCharacterData(ctx,
		func(s domain.SnapshotSet) { set = s },
		func(bool) {})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// effectiveOrder applies the same lazy self-healing as the TUI: a saved order
// that no longer matches the roster is discarded and cleared from the store.
func effectiveOrder(store ports.OrderStore, set domain.SnapshotSet) (domain.DisplayOrder, bool, error) {
	saved, err := store.LoadDisplayOrder()
	if err != nil {
		return nil, false, err
	}
	if saved == nil {
		return domain.DefaultOrder(set), false, nil
	}
	if !saved.Validate(set) {
		if err := store.ClearDisplayOrder(); err != nil {
			return nil, false, err
		}
		return domain.DefaultOrder(set), false, nil
	}
	return saved, true, nil
}

func formatSnapshot(snap domain.CharacterSnapshot) string {
	if snap.ArtifactBonus > 0 {
		return fmt.Sprintf("%s  %s  %d (+%d)", snap.ID, snap.Class, snap.Light, snap.ArtifactBonus)
	}
	return fmt.Sprintf("%s  %s  %d", snap.ID, snap.Class, snap.Light)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
