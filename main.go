package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	advisorx "github.com/coverwise/advisor-agent/agent/agents/advisor"
	stagex "github.com/coverwise/advisor-agent/agent/agents/stage"
	llmx "github.com/coverwise/advisor-agent/agent/llm"
	statex "github.com/coverwise/advisor-agent/agent/state"
	configx "github.com/coverwise/advisor-agent/pkg/config"
	_ "github.com/coverwise/advisor-agent/pkg/logger/autoload"
	webhookx "github.com/coverwise/advisor-agent/pkg/webhook"
)

type AppConfig struct {
	SessionID      string `envconfig:"SESSION_ID" split_words:"true" default:"local"`
	CustomerID     string `envconfig:"CUSTOMER_ID" split_words:"true"`
	StoreBackend   string `envconfig:"STORE_BACKEND" split_words:"true" default:"memory"`
	WebhookEnabled bool   `envconfig:"WEBHOOK_ENABLED" split_words:"true" default:"false"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("ADVISOR")
	llmCfg := configx.MustNew[llmx.Config]("LLM")

	registry, err := stagex.NewRegistry(ctx, *llmCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build stage registry")
	}

	store := buildStore(ctx, appCfg)

	orch, err := advisorx.New(store, registry, advisorx.Config{
		CustomerID: appCfg.CustomerID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	var hook *webhookx.Client
	if appCfg.WebhookEnabled {
		hookCfg := configx.MustNew[webhookx.Config]("WEBHOOK")
		hook = webhookx.MustNew(*hookCfg)
	}

	fmt.Println("coverwise advisor ready. Type your message, or /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}

		reply, err := orch.RunTurn(ctx, appCfg.SessionID, line)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("advisor> the advisory service is unavailable right now.")
			continue
		}

		fmt.Println("advisor>", reply)

		if hook != nil {
			go publishRecommendation(hook, appCfg.SessionID, reply)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("read input")
	}
}

func buildStore(ctx context.Context, cfg *AppConfig) statex.Store {
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case "upstash":
		redisCfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
		store, err := statex.NewUpstashRedisStore(*redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build upstash store")
		}
		return store
	case "postgres":
		pgCfg := configx.MustNew[statex.PostgresConfig]("POSTGRES")
		store, err := statex.NewPostgresStore(*pgCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("build postgres store")
		}
		if err := store.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("init postgres store")
		}
		return store
	default:
		return statex.NewMemoryStore()
	}
}

func publishRecommendation(hook *webhookx.Client, sessionID, reply string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := hook.Publish(ctx, webhookx.Event{
		SessionID:      sessionID,
		Recommendation: reply,
		ProducedAt:     time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("publish recommendation webhook")
	}
}
