package llm

import "strings"

// ModelCost is list pricing in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost finds pricing for a model ID as reported in logged events.
// Providers report dated or vendor-prefixed IDs ("gpt-4o-mini-2024-07-18",
// "openai/gpt-4o-mini"), so the longest table key that prefixes the bare
// ID wins. Returns nil for unknown models.
func LookupCost(modelID string) *ModelCost {
	id := modelID
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}

	best := ""
	for name := range modelCosts {
		if strings.HasPrefix(id, name) && len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

// modelCosts covers the models the provider aliases resolve to plus their
// common neighbours. Prices as of 2026-02.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"claude-sonnet-4":   {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-3-5-haiku":  {0.8, 4},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}
