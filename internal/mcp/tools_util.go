// tools_util.go holds parameter extraction and result helpers shared by the
// tool handlers.
//
// Extraction is permissive: a missing or mistyped optional parameter falls
// back to its default instead of failing the call. LLMs often omit optional
// arguments or send "true" for true, and a usable default beats an error the
// model has to interpret.

package mcp

import (
	"github.com/jpl-au/globfs/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// getString returns the named string argument, or def when it is absent or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns the named boolean argument, or def when it is absent or
// not a JSON boolean.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getStrings returns the named string array argument. JSON arrays decode as
// []any, so non-string elements are skipped. A lone string is accepted as a
// one-element array. Returns nil when the argument is absent.
func getStrings(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	switch v := args[name].(type) {
	case string:
		return []string{v}
	case []any:
		result := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				result = append(result, s)
			}
		}
		return result
	}
	return nil
}

// jsonResult returns v as indented JSON text. Marshalling failures become
// tool errors so every failure reaches the model the same way.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
