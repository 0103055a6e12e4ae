package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tdh-assistant/server/internal/agent/flow"
	"github.com/tdh-assistant/server/internal/agent/generate"
	"github.com/tdh-assistant/server/internal/agent/model"
	"github.com/tdh-assistant/server/internal/agent/repo"
	"github.com/tdh-assistant/server/internal/core"
	logx "github.com/tdh-assistant/server/pkg/logger"
	pkgredis "github.com/tdh-assistant/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the intake
// assistant, sourced from environment variables (loaded from .env for
// local runs).
type AppConfig struct {
	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	Environment string `envconfig:"APP_ENV" default:"development"`

	// Assistant configs
	Generator model.GeneratorModelConfig
	Persona   model.PersonaConfig
	Session   model.SessionConfig
}

// exit words terminate immediately with no turn processing.
func isExitWord(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}

func buildStore(ctx context.Context, cfg AppConfig, ttl time.Duration) (model.SessionStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		var redisCfg pkgredis.Config
		if err := envconfig.Process("", &redisCfg); err != nil {
			return nil, fmt.Errorf("process redis config: %w", err)
		}
		rdb, err := redisCfg.New()
		if err != nil {
			return nil, fmt.Errorf("initialise redis client: %w", err)
		}
		return repo.NewRedisSessionStore(rdb, ttl), nil
	case "file":
		store, err := repo.NewFileSessionStore(cfg.Session.FileDir)
		if err != nil {
			return nil, err
		}
		// Retention policy lives outside the engine: expire idle
		// sessions once at startup.
		if err := store.Cleanup(ctx, ttl); err != nil {
			logx.Warn().Err(err).Msg("Session cleanup failed")
		}
		return store, nil
	default:
		return repo.NewMemorySessionStore(), nil
	}
}

// printNewReplies prints every assistant utterance appended after
// fromLen, prefixed with the persona name.
func printNewReplies(s *model.Session, fromLen int, assistantName string) int {
	if fromLen > len(s.History) {
		// The engine restarted the session after a load failure; the
		// history is shorter than what we already printed. Replay it.
		fromLen = 0
	}
	for _, u := range s.History[fromLen:] {
		if u.Role == model.RoleAssistant {
			fmt.Printf("%s: %s\n", assistantName, u.Text)
		}
	}
	return len(s.History)
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	ttl, err := time.ParseDuration(cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Invalid SESSION_TTL '%s': %v", cfg.Session.TTL, err)
	}

	store, err := buildStore(ctx, cfg, ttl)
	if err != nil {
		log.Fatalf("Failed to build session store: %v", err)
	}

	gen, err := generate.NewGeminiGenerator(ctx, generate.GeminiConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Generator,
	})
	if err != nil {
		log.Fatalf("Failed to build generator: %v", err)
	}

	engine, err := flow.NewEngine(gen, store, cfg.Persona)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	threadID := fmt.Sprintf("thread_%d", time.Now().Unix())
	fmt.Printf("Starting %s Application Assistant...\n", cfg.Persona.AgencyName)

	// Initial turn: no user text, just the greeting.
	session, err := engine.ProcessTurn(ctx, threadID, "")
	if err != nil {
		log.Fatalf("Failed to start conversation: %v", err)
	}
	printed := printNewReplies(session, 0, cfg.Persona.AssistantName)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		if isExitWord(line) {
			fmt.Printf("%s: Thank you for using the %s Application Assistant. Goodbye!\n",
				cfg.Persona.AssistantName, cfg.Persona.AgencyName)
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		session, err = engine.ProcessTurn(ctx, threadID, line)
		if err != nil {
			logx.Error().Err(err).Msg("Turn failed")
			continue
		}
		printed = printNewReplies(session, printed, cfg.Persona.AssistantName)

		if session.Stage == model.StageTerminal {
			fmt.Printf("\nApplication process complete. Thank you for using the %s Application Assistant.\n", cfg.Persona.AgencyName)
			break
		}
	}
}
