package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/tdh-assistant/server/internal/agent/model"
	errx "github.com/tdh-assistant/server/internal/core/error"
	logx "github.com/tdh-assistant/server/pkg/logger"
)

// GeminiConfig holds what is needed to construct the Gemini generator.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   model.GeneratorModelConfig
}

// GeminiGenerator implements Generator on top of the eino Gemini chat model.
type GeminiGenerator struct {
	cm        *gemini.ChatModel
	modelName string
	timeout   time.Duration
}

// NewGeminiGenerator creates the genai client and chat model.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating generator model")
		return nil, fmt.Errorf("error creating generator model: %w", err)
	}

	timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &GeminiGenerator{cm: cm, modelName: cfg.Model.Model, timeout: timeout}, nil
}

// Generate runs one bounded completion call. History utterances are
// mapped onto chat roles; anything else is skipped.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := make([]*schema.Message, 0, len(req.History)+2)
	messages = append(messages, schema.SystemMessage(req.System))
	for _, u := range req.History {
		switch u.Role {
		case model.RoleUser:
			messages = append(messages, schema.UserMessage(u.Text))
		case model.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(u.Text, nil))
		}
	}
	if strings.TrimSpace(req.UserText) != "" {
		messages = append(messages, schema.UserMessage(req.UserText))
	}

	out, err := g.cm.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("Generation call failed")
		return "", errx.WrapGeneration(err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		logx.Warn().Str("model", g.modelName).Msg("Generation returned empty content")
		return "", errx.WrapGeneration(fmt.Errorf("empty completion"))
	}

	logUsageCost(g.modelName, out)

	return out.Content, nil
}

var _ Generator = (*GeminiGenerator)(nil)
