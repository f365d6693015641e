package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/partscout/partscout/pkg/types"
)

// Error codes following JSON-RPC 2.0 specification
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyQuery    = -32001 // Query parameter is empty
	ErrorCodePartNotFound  = -32002 // Part number not present in the catalog
)

// handleSearchParts handles the search_parts tool invocation
func (s *Server) handleSearchParts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	userContext := getStringDefault(args, "context", "")
	userID := getStringDefault(args, "user_id", "anonymous")

	s.log.Debug().Str("query", query).Str("user_id", userID).Msg("mcp search_parts")

	result, err := s.engine.Search(ctx, query, userID, userContext)
	if err != nil {
		if errors.Is(err, types.ErrEmptyQuery) {
			return nil, newMCPError(ErrorCodeEmptyQuery, "query cannot be empty", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"original_query":               result.OriginalQuery,
		"enhanced_query":               result.EnhancedQuery,
		"results":                      result.Results,
		"recommendations":              result.Recommendations,
		"personalized_recommendations": result.PersonalizedRecommendations,
		"total_found":                  result.TotalFound,
		"search_context":               result.SearchContext,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetPart handles the get_part tool invocation
func (s *Server) handleGetPart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	partNumber, ok := args["part_number"].(string)
	if !ok || partNumber == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "part_number parameter is required", map[string]interface{}{
			"param":  "part_number",
			"reason": "missing or empty",
		})
	}

	part, err := s.engine.GetPart(ctx, partNumber)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "part lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if part == nil {
		response := map[string]interface{}{
			"found":       false,
			"part_number": partNumber,
			"message":     "Part not found in the catalog.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}

	response := map[string]interface{}{
		"found": true,
		"part":  part,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleFindSimilarParts handles the find_similar_parts tool invocation
func (s *Server) handleFindSimilarParts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	partNumber, ok := args["part_number"].(string)
	if !ok || partNumber == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "part_number parameter is required", map[string]interface{}{
			"param":  "part_number",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 0)
	if limit < 0 || limit > 20 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 20", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	parts, err := s.engine.FindSimilarN(ctx, partNumber, limit)
	if err != nil {
		if errors.Is(err, types.ErrEmptyPartNumber) {
			return nil, newMCPError(ErrorCodeInvalidParams, "part_number cannot be empty", nil)
		}
		return nil, newMCPError(ErrorCodeInternalError, "similar-parts search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"part_number":   partNumber,
		"similar_parts": parts,
		"count":         len(parts),
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetRecommendations handles the get_recommendations tool invocation
func (s *Server) handleGetRecommendations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	userID, ok := args["user_id"].(string)
	if !ok || userID == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "user_id parameter is required", map[string]interface{}{
			"param":  "user_id",
			"reason": "missing or empty",
		})
	}

	recs := s.engine.Recommendations(ctx, userID)
	profile := s.engine.Profile(userID)

	response := map[string]interface{}{
		"user_id":         userID,
		"recommendations": recs,
		"profile": map[string]interface{}{
			"favorite_categories":     profile.FavoriteCategories,
			"preferred_manufacturers": profile.PreferredManufacturers,
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value.
// JSON numbers decode as float64, so both forms are accepted.
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	switch val := args[key].(type) {
	case float64:
		return int(val)
	case int:
		return val
	}
	return defaultValue
}
