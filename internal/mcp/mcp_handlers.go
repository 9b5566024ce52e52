package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	mgr      contract.StoreManager
	geocoder contract.Geocoder
}

// propertyList is the payload of list_properties.
type propertyList struct {
	Total      int                     `json:"total"`
	Properties []schema.ScoredProperty `json:"properties"`
}

// classification is the payload of classify_score.
type classification struct {
	Score int    `json:"score"`
	Tier  string `json:"tier"`
	Label string `json:"label"`
}

// distance is the payload of get_distance.
type distance struct {
	Kilometres float64 `json:"kilometres"`
	Label      string  `json:"label"`
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleListProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if s := request.GetString("sort", ""); s != "" {
		cfg.SortBy = schema.SortMode(s)
		if _, ok := schema.ValidSortModes[cfg.SortBy]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid sort mode '%s'. must be score, name, created, price", s)), nil
		}
	}
	if l := request.GetInt("limit", 0); l != 0 {
		if l < 0 || l > contract.MaxResultLimit {
			return mcp.NewToolResultError(fmt.Sprintf("limit must be greater than 0 and cannot exceed %d", contract.MaxResultLimit)), nil
		}
		cfg.ResultLimit = l
	}

	ranked, total, err := core.GetPropertyResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}
	return jsonResult(propertyList{Total: total, Properties: ranked}), nil
}

func (h *toolHandler) handleGetPropertyScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil || id <= 0 {
		return mcp.NewToolResultError("a positive property id is required"), nil
	}

	detail, err := core.GetPropertyDetail(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr, h.geocoder, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	return jsonResult(detail), nil
}

func (h *toolHandler) handleCompareProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := core.ParseIDs([]string{request.GetString("ids", "")})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid comparison parameters: %v", err)), nil
	}

	result, err := core.GetComparisonResult(core.WithSuppressHeader(ctx), h.baseCfg.Clone(), h.mgr, ids)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result), nil
}

func (h *toolHandler) handleGetCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := core.GetCatalogSummary(h.baseCfg.Clone(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("catalogue failed: %v", err)), nil
	}
	return jsonResult(rows), nil
}

func (h *toolHandler) handleGetWeights(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weights, err := core.GetEffectiveWeights(h.baseCfg.Clone(), h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("weights failed: %v", err)), nil
	}
	return jsonResult(weights), nil
}

func (h *toolHandler) handleClassifyScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	score, err := request.RequireInt("score")
	if err != nil {
		return mcp.NewToolResultError("score is required"), nil
	}
	if score < 0 || score > 100 {
		return mcp.NewToolResultError(fmt.Sprintf("score must be between 0 and 100 (received %d)", score)), nil
	}

	c := algo.Classify(score)
	return jsonResult(classification{Score: score, Tier: c.Tier.Token(), Label: c.Label}), nil
}

func (h *toolHandler) handleGetDistance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	km, err := core.Distance(ctx, h.geocoder, request.GetString("from", ""), request.GetString("to", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("distance failed: %v", err)), nil
	}
	return jsonResult(distance{Kilometres: km, Label: algo.FormatDistance(km)}), nil
}
