// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the nestscore MCP server without starting it.
// This is exposed for unit testing. geocoder may be nil.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder) *server.MCPServer {
	s := server.NewMCPServer(
		"Nestscore Property Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		mgr:      mgr,
		geocoder: geocoder,
	}

	// --- 1. Tool: list_properties ---
	s.AddTool(mcp.NewTool("list_properties",
		mcp.WithDescription("List saved properties ranked by their weighted overall score."),
		mcp.WithString("sort", mcp.Description("Sort order. Defaults to 'score'."), mcp.Enum("score", "name", "created", "price")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleListProperties)

	// --- 2. Tool: get_property_score ---
	s.AddTool(mcp.NewTool("get_property_score",
		mcp.WithDescription("Get the category breakdown, overall score, completion and distance to work of one property."),
		mcp.WithNumber("id", mcp.Description("The property id."), mcp.Required()),
	), h.handleGetPropertyScore)

	// --- 3. Tool: compare_properties ---
	s.AddTool(mcp.NewTool("compare_properties",
		mcp.WithDescription("Compare up to 4 properties side by side, marking the best and worst score per category."),
		mcp.WithString("ids", mcp.Description("Comma-separated property ids, e.g. '1,4,7'."), mcp.Required()),
	), h.handleCompareProperties)

	// --- 4. Tool: get_catalog ---
	s.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("List every question in the evaluation catalogue with its category weight and answer options."),
	), h.handleGetCatalog)

	// --- 5. Tool: get_weights ---
	s.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Show the effective weight of every category and where it came from."),
	), h.handleGetWeights)

	// --- 6. Tool: classify_score ---
	s.AddTool(mcp.NewTool("classify_score",
		mcp.WithDescription("Map a 0-100 score to its tier and label."),
		mcp.WithNumber("score", mcp.Description("The score to classify."), mcp.Required()),
	), h.handleClassifyScore)

	// --- 7. Tool: get_distance ---
	s.AddTool(mcp.NewTool("get_distance",
		mcp.WithDescription("Great-circle distance between two points, each given as 'lat,lng' or a UK postcode."),
		mcp.WithString("from", mcp.Description("The starting point."), mcp.Required()),
		mcp.WithString("to", mcp.Description("The destination."), mcp.Required()),
	), h.handleGetDistance)

	return s
}

// StartMCPServer starts the nestscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager, geocoder contract.Geocoder) error {
	s := NewMCPServer(baseCfg, mgr, geocoder)
	return server.ServeStdio(s)
}
