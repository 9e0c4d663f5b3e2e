package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names
const (
	ToolCompareSources = "compare_sources"
	ToolCompareFiles   = "compare_files"
	ToolListMembers    = "list_members"
)

// RegisterTools registers all eacdiff MCP tools with the server using
// handlers built from the default dependencies
func RegisterTools(s *server.MCPServer) {
	RegisterToolsWith(s, NewHandlerSet(nil))
}

// RegisterToolsWith registers all eacdiff MCP tools served by h
func RegisterToolsWith(s *server.MCPServer, h *HandlerSet) {
	matchingOptions := []mcp.ToolOption{
		mcp.WithBoolean("show_unchanged",
			mcp.Description("Include unchanged members in the result (default: false)")),
		mcp.WithArray("distance_levels",
			mcp.Items(map[string]any{"type": "number"}),
			mcp.Description("Strictly increasing distance thresholds within (0, 1] of the matching passes (default: [0.00001, 0.5, 1.0])")),
		mcp.WithNumber("max_lambda_depth",
			mcp.Description("Maximum nesting depth of lambda bodies matched recursively (default: 16)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary lists changed members and edit counts, full returns every edit (default: summary)")),
	}

	// Tool 1: compare_sources - compare two versions given as text
	s.AddTool(mcp.NewTool(ToolCompareSources, append([]mcp.ToolOption{
		mcp.WithDescription("Compare two versions of C# source text member by member and return the statement-level edit script"),
		mcp.WithString("old_source",
			mcp.Required(),
			mcp.Description("C# source of the old version")),
		mcp.WithString("new_source",
			mcp.Required(),
			mcp.Description("C# source of the new version")),
		mcp.WithString("file_name",
			mcp.Description("File name reported in locations (default: <old> and <new>)")),
	}, matchingOptions...)...), h.HandleCompareSources)

	// Tool 2: compare_files - compare two files or two directory trees
	s.AddTool(mcp.NewTool(ToolCompareFiles, append([]mcp.ToolOption{
		mcp.WithDescription("Compare two C# files, or two directory trees file by file, and return the statement-level edit scripts"),
		mcp.WithString("old_path",
			mcp.Required(),
			mcp.Description("Path of the old file or directory")),
		mcp.WithString("new_path",
			mcp.Required(),
			mcp.Description("Path of the new file or directory")),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories when comparing trees (default: true)")),
	}, matchingOptions...)...), h.HandleCompareFiles)

	// Tool 3: list_members - members with a body that comparisons pair up
	s.AddTool(mcp.NewTool(ToolListMembers,
		mcp.WithDescription("List the members of a C# file that have a body, with the signatures used to pair them across versions"),
		mcp.WithString("source",
			mcp.Description("C# source text; either source or path is required")),
		mcp.WithString("path",
			mcp.Description("Path of a C# file; either source or path is required")),
	), h.HandleListMembers)
}
