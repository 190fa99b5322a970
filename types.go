package macromentor

import (
	"context"

	"macromentor/nutrition"
	"macromentor/tools"
)

type SlackClient interface {
	PostMessage(ctx context.Context, channel string, message string) error
}

type ToolProvider interface {
	GetTools() []tools.Tool
	GetTool(name string) (tools.Tool, error)
}

// CatalogSource yields the foods a plan is allocated from.
type CatalogSource interface {
	Foods(ctx context.Context) ([]nutrition.Food, error)
}

// PlanComputer is satisfied by nutrition.InstrumentedPlanner.
type PlanComputer interface {
	Compute(ctx context.Context, p nutrition.Profile, foods []nutrition.Food) nutrition.Result
}
