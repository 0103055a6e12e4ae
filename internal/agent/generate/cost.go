package generate

import (
	"github.com/cloudwego/eino/schema"

	logx "github.com/tdh-assistant/server/pkg/logger"
)

// pricing defines USD cost per 1M text tokens for input/output.
type pricing struct {
	inputPerM  float64
	outputPerM float64
}

// Gemini standard text pricing. Unknown models log zero cost.
var modelPricing = map[string]pricing{
	"gemini-2.5-flash":      {inputPerM: 0.30, outputPerM: 2.50},
	"gemini-2.5-flash-lite": {inputPerM: 0.10, outputPerM: 0.40},
}

// logUsageCost emits a debug line with token usage and estimated cost
// for one completion, when usage metadata is present.
func logUsageCost(modelName string, out *schema.Message) {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	p := modelPricing[modelName]
	inC := p.inputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outC := p.outputPerM * float64(usage.CompletionTokens) / 1_000_000.0

	logx.Debug().
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", inC+outC).
		Msg("LLM usage")
}
