package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// searchPartsTool returns the tool definition for search_parts
func searchPartsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_parts",
		Description: "Search the electronic parts catalog with fuzzy matching and personalized results",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query (part number, description, or keywords)",
				},
				"context": map[string]interface{}{
					"type":        "string",
					"description": "Optional application context to refine the search (e.g., 'battery powered sensor')",
				},
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User identifier for session history and personalization",
					"default":     "anonymous",
				},
			},
			Required: []string{"query"},
		},
	}
}

// getPartTool returns the tool definition for get_part
func getPartTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_part",
		Description: "Look up a single part by its exact part number",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"part_number": map[string]interface{}{
					"type":        "string",
					"description": "Manufacturer part number to look up",
				},
			},
			Required: []string{"part_number"},
		},
	}
}

// findSimilarPartsTool returns the tool definition for find_similar_parts
func findSimilarPartsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "find_similar_parts",
		Description: "Find parts with descriptions similar to a reference part",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"part_number": map[string]interface{}{
					"type":        "string",
					"description": "Reference part number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of similar parts to return (1-20)",
					"default":     5,
					"minimum":     1,
					"maximum":     20,
				},
			},
			Required: []string{"part_number"},
		},
	}
}

// getRecommendationsTool returns the tool definition for get_recommendations
func getRecommendationsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_recommendations",
		Description: "Get personalized part recommendations derived from a user's search history",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_id": map[string]interface{}{
					"type":        "string",
					"description": "User identifier whose history drives the recommendations",
				},
			},
			Required: []string{"user_id"},
		},
	}
}
