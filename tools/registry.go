package tools

import (
	"context"
	"fmt"
	"sort"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a registry serving the catalog and plan tools over
// the same catalog.
func NewRegistry(catalog *Catalog, planner Planner) (*Registry, error) {
	if planner == nil {
		return nil, fmt.Errorf("planner is required")
	}
	tools := map[string]Tool{
		"catalog_get":   NewCatalogGet(catalog),
		"plan_generate": NewPlanGenerate(catalog, planner),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry sorted by name
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Run dispatches call to the named tool.
func (r Registry) Run(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	out, err := tool.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("run tool %q: %w", call.Name, err)
	}
	return out, nil
}
