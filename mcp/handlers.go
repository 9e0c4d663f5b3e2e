package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/eacdiff/app"
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/parser"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// matchingArgs are the arguments shared by the comparing tools
type matchingArgs struct {
	showUnchanged  bool
	distanceLevels []float64
	maxLambdaDepth int
	outputMode     string
}

// parseMatchingArgs reads the matching arguments over the configured
// defaults
func (h *HandlerSet) parseMatchingArgs(args map[string]interface{}) (matchingArgs, error) {
	cfg := h.deps.Config()
	m := matchingArgs{
		showUnchanged:  cfg.Output.ShowUnchanged,
		distanceLevels: cfg.Matching.DistanceLevels,
		maxLambdaDepth: cfg.Matching.MaxLambdaDepth,
		outputMode:     "summary",
	}

	if v, ok := args["show_unchanged"].(bool); ok {
		m.showUnchanged = v
	}
	if raw, ok := args["distance_levels"].([]interface{}); ok && len(raw) > 0 {
		levels := make([]float64, 0, len(raw))
		for _, item := range raw {
			v, ok := item.(float64)
			if !ok {
				return m, fmt.Errorf("distance_levels must be an array of numbers")
			}
			levels = append(levels, v)
		}
		if err := validateLevels(levels); err != nil {
			return m, err
		}
		m.distanceLevels = levels
	}
	if v, ok := args["max_lambda_depth"].(float64); ok {
		if v < 1 {
			return m, fmt.Errorf("max_lambda_depth must be at least 1")
		}
		m.maxLambdaDepth = int(v)
	}
	if v, ok := args["output_mode"].(string); ok && v != "" {
		if v != "summary" && v != "full" {
			return m, fmt.Errorf("output_mode must be summary or full")
		}
		m.outputMode = v
	}
	return m, nil
}

func validateLevels(levels []float64) error {
	for i, level := range levels {
		if level <= 0 || level > 1 {
			return fmt.Errorf("distance_levels[%d] must be in (0, 1]", i)
		}
		if i > 0 && level <= levels[i-1] {
			return fmt.Errorf("distance_levels must be strictly increasing")
		}
	}
	return nil
}

// HandleCompareSources handles the compare_sources tool
func (h *HandlerSet) HandleCompareSources(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	oldSource, ok := args["old_source"].(string)
	if !ok {
		return mcp.NewToolResultError("old_source parameter is required and must be a string"), nil
	}
	newSource, ok := args["new_source"].(string)
	if !ok {
		return mcp.NewToolResultError("new_source parameter is required and must be a string"), nil
	}
	matching, err := h.parseMatchingArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := domain.CompareRequest{
		OldSource:      []byte(oldSource),
		NewSource:      []byte(newSource),
		ShowUnchanged:  matching.showUnchanged,
		DistanceLevels: matching.distanceLevels,
		MaxLambdaDepth: matching.maxLambdaDepth,
	}
	if name, ok := args["file_name"].(string); ok {
		req.OldPath = name
		req.NewPath = name
	}

	useCase, err := h.deps.BuildCompareUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparer: %v", err)), nil
	}
	response, err := useCase.Run(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	return jsonResult(compareResult(response, matching.outputMode))
}

// HandleCompareFiles handles the compare_files tool
func (h *HandlerSet) HandleCompareFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	oldPath, ok := args["old_path"].(string)
	if !ok {
		return mcp.NewToolResultError("old_path parameter is required and must be a string"), nil
	}
	newPath, ok := args["new_path"].(string)
	if !ok {
		return mcp.NewToolResultError("new_path parameter is required and must be a string"), nil
	}
	matching, err := h.parseMatchingArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode, err := app.ResolveInputMode(h.deps.FileReader(), oldPath, newPath, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if mode == app.InputModeFiles {
		useCase, err := h.deps.BuildCompareUseCase()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create comparer: %v", err)), nil
		}
		response, err := useCase.Run(ctx, domain.CompareRequest{
			OldPath:        oldPath,
			NewPath:        newPath,
			ShowUnchanged:  matching.showUnchanged,
			DistanceLevels: matching.distanceLevels,
			MaxLambdaDepth: matching.maxLambdaDepth,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
		}
		return jsonResult(compareResult(response, matching.outputMode))
	}

	cfg := h.deps.Config()
	recursive := cfg.Input.Recursive
	if v, ok := args["recursive"].(bool); ok {
		recursive = v
	}

	useCase, err := h.deps.BuildBatchUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create comparer: %v", err)), nil
	}
	response, err := useCase.Run(ctx, domain.BatchRequest{
		OldDir:          oldPath,
		NewDir:          newPath,
		Recursive:       recursive,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		ShowUnchanged:   matching.showUnchanged,
		DistanceLevels:  matching.distanceLevels,
		MaxLambdaDepth:  matching.maxLambdaDepth,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(batchResult(response, matching.outputMode))
}

// HandleListMembers handles the list_members tool
func (h *HandlerSet) HandleListMembers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	source, hasSource := args["source"].(string)
	path, hasPath := args["path"].(string)
	var content []byte
	switch {
	case hasSource:
		content = []byte(source)
	case hasPath:
		if !h.deps.FileReader().IsValidCSharpFile(path) {
			return mcp.NewToolResultError(fmt.Sprintf("not a C# file: %s", path)), nil
		}
		data, err := h.deps.FileReader().ReadFile(path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		content = data
	default:
		return mcp.NewToolResultError("either source or path is required"), nil
	}

	root, err := parser.New().ParseSyntax(ctx, content, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse source: %v", err)), nil
	}

	members := parser.Members(root)
	items := make([]map[string]interface{}, 0, len(members))
	for _, member := range members {
		loc := member.Node.Location
		items = append(items, map[string]interface{}{
			"name":       member.Name,
			"signature":  member.Signature,
			"kind":       string(member.Kind),
			"start_line": loc.StartLine,
			"end_line":   loc.EndLine,
		})
	}

	return jsonResult(map[string]interface{}{
		"total_members": len(items),
		"members":       items,
	})
}

// compareResult shapes a file comparison for the requested output mode
func compareResult(response *domain.CompareResponse, mode string) interface{} {
	if mode == "full" {
		return response
	}

	changed := make([]map[string]interface{}, 0, len(response.Members))
	for _, member := range response.Members {
		entry := map[string]interface{}{
			"signature":           member.Signature,
			"status":              member.Status,
			"structural_distance": member.StructuralDistance,
			"edits":               editCounts(member.Edits),
		}
		if len(member.Lambdas) > 0 {
			entry["lambdas"] = len(member.Lambdas)
		}
		if member.Error != "" {
			entry["error"] = member.Error
		}
		changed = append(changed, entry)
	}

	return map[string]interface{}{
		"changed":  response.Changed(),
		"summary":  response.Summary,
		"members":  changed,
		"warnings": response.Warnings,
		"errors":   response.Errors,
	}
}

// batchResult shapes a batch comparison for the requested output mode
func batchResult(response *domain.BatchResponse, mode string) interface{} {
	if mode == "full" {
		return response
	}

	files := make([]map[string]interface{}, 0, len(response.Files))
	for i := range response.Files {
		file := &response.Files[i]
		files = append(files, map[string]interface{}{
			"old_path": file.OldPath,
			"new_path": file.NewPath,
			"changed":  file.Changed(),
			"summary":  file.Summary,
		})
	}

	return map[string]interface{}{
		"summary":       response.Summary,
		"files":         files,
		"added_files":   response.AddedFiles,
		"removed_files": response.RemovedFiles,
		"warnings":      response.Warnings,
		"errors":        response.Errors,
	}
}

// editCounts counts edits by kind, listing the kinds in name order
func editCounts(edits []domain.SyntaxEdit) map[string]int {
	counts := make(map[string]int)
	for _, edit := range edits {
		counts[string(edit.Kind)]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	ordered := make(map[string]int, len(kinds))
	for _, kind := range kinds {
		ordered[kind] = counts[kind]
	}
	return ordered
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
