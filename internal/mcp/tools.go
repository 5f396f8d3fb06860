package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/apidash/internal/history"
	"github.com/ziadkadry99/apidash/internal/panels"
)

// ToolName returns the MCP tool name for a panel.
func ToolName(panelID string) string {
	return "fetch_" + panelID
}

// panelTool describes a panel as an MCP tool. Every input becomes a string
// argument, required unless it is optional or has a default.
func panelTool(p *panels.Panel) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("%s. Returns the panel as plain text.", p.Title)),
	}
	for _, in := range p.Inputs {
		desc := in.Label
		if in.Placeholder != "" {
			desc += ", e.g. " + in.Placeholder
		}
		propOpts := []mcp.PropertyOption{}
		switch {
		case in.Default != "":
			desc += " (default " + in.Default + ")"
		case !in.Optional:
			propOpts = append(propOpts, mcp.Required())
		}
		propOpts = append(propOpts, mcp.Description(desc))
		opts = append(opts, mcp.WithString(in.Name, propOpts...))
	}
	return mcp.NewTool(ToolName(p.ID), opts...)
}

// fetchHandler runs the panel with the tool arguments as params.
func (s *Server) fetchHandler(p *panels.Panel) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		params := panels.Params{}
		for _, in := range p.Inputs {
			v, ok := args[in.Name]
			if !ok || v == nil {
				continue
			}
			str, isString := v.(string)
			if !isString {
				str = fmt.Sprint(v)
			}
			params[in.Name] = str
		}

		res := p.Fetch(ctx, params)
		if !res.OK && !res.Invalid {
			s.logger.Warn().Err(res.Err).Str("panel", p.ID).Msg("panel fetch failed")
		}
		if s.history != nil {
			if _, err := s.history.Record(context.WithoutCancel(ctx), history.FromResult(res, history.SourceMCP)); err != nil {
				s.logger.Error().Err(err).Str("panel", p.ID).Msg("recording fetch")
			}
		}

		if !res.OK {
			return mcp.NewToolResultError(res.Message), nil
		}
		return mcp.NewToolResultText(strings.TrimRight(res.Text, "\n")), nil
	}
}
