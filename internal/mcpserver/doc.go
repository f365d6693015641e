// Package mcpserver implements the Model Context Protocol (MCP) server
// for PartScout.
//
// The server exposes four tools to AI assistants:
//   - search_parts: Search the parts catalog with fuzzy ranking and personalization
//   - get_part: Look up a single part by exact part number
//   - find_similar_parts: Find parts with similar descriptions
//   - get_recommendations: Personalized suggestions from a user's search history
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport. The server reads
// protocol messages from stdin and writes responses to stdout, so all
// logging goes to stderr.
//
// # Tool: search_parts
//
//	Request:
//	{
//	  "name": "search_parts",
//	  "arguments": {
//	    "query": "10k resistor",
//	    "context": "LED current limiting",
//	    "user_id": "alice"
//	  }
//	}
//
// The response mirrors the search result structure: the original and
// enhanced queries, the ranked parts, recommendations, and the total
// number of matches.
//
// # Error Handling
//
// Tool handlers return standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32001,
//	    "message": "query parameter is required and cannot be empty",
//	    "data": {"param": "query", "reason": "missing or empty"}
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (catalog, assistant, etc.)
//   - -32001: Empty search query
//   - -32002: Part not found
package mcpserver
