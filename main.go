package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/coach-core-poc/server/internal/agent/coach"
	"github.com/coach-core-poc/server/internal/agent/model"
	"github.com/coach-core-poc/server/internal/agent/observers"
	"github.com/coach-core-poc/server/internal/agent/repo"
	"github.com/coach-core-poc/server/internal/core"
	logx "github.com/coach-core-poc/server/pkg/logger"
	pkgredis "github.com/coach-core-poc/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the coach, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Coach configs
	Response     model.ResponseModelConfig
	Prompt       model.CoachPromptConfig
	Conversation model.ConversationConfig

	// Single-user demo session; the engine itself supports many sessions.
	SessionID string `envconfig:"SESSION_ID" default:"demo_user"`
}

func main() {
	ctx := context.Background()
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	chatModel, err := coach.NewResponseModel(ctx, coach.ChatModelConfig{
		APIKey:     envCfg.APIKey,
		BaseURL:    envCfg.BaseURL,
		RespConfig: &envCfg.Response,
	})
	if err != nil {
		log.Fatalf("Failed to create response model: %v", err)
	}

	callbacks.AppendGlobalHandlers(observers.NewModelCallbacks())

	historyRepo := repo.NewRedisConversationRepository(rdb, ttl)
	c := coach.New(
		chatModel,
		repo.NewRedisProfileRepository(rdb),
		historyRepo,
		envCfg.Prompt,
	)

	fmt.Println("Fitness coach ready. Ask for today's workout or answer profile questions (Ctrl-D to quit, /reset to clear the chat).")
	if n, err := historyRepo.MessageCount(ctx, envCfg.SessionID); err == nil && n > 0 {
		fmt.Printf("Resuming session %q with %d stored messages.\n", envCfg.SessionID, n)
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		utterance := strings.TrimSpace(scanner.Text())
		if utterance == "" {
			continue
		}
		if utterance == "/reset" {
			if err := c.Reset(ctx, envCfg.SessionID); err != nil {
				fmt.Printf("reset failed: %v\n", err)
			} else {
				fmt.Println("Conversation history cleared.")
			}
			continue
		}

		stream, err := c.HandleTurn(ctx, model.TurnInput{
			SessionID: envCfg.SessionID,
			Utterance: utterance,
		})
		if err != nil {
			fmt.Printf("turn failed: %v\n", err)
			continue
		}

		// Each received snapshot is the full reply so far; print only the
		// suffix that is new since the previous one.
		printed := 0
		for {
			snapshot, err := stream.Recv()
			if err == io.EOF {
				break
			}
			if err != nil {
				fmt.Printf("\nturn aborted: %v", err)
				break
			}
			fmt.Print(snapshot[printed:])
			printed = len(snapshot)
		}
		stream.Close()
		fmt.Println()
	}
}
