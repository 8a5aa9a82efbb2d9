package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	catalogx "github.com/tanpawarit/ecom-support-agent/agent/catalog"
	contactx "github.com/tanpawarit/ecom-support-agent/agent/contact"
	contractx "github.com/tanpawarit/ecom-support-agent/agent/contract"
	evaluatorx "github.com/tanpawarit/ecom-support-agent/agent/evaluator"
	orchestratorx "github.com/tanpawarit/ecom-support-agent/agent/orchestrator"
	statex "github.com/tanpawarit/ecom-support-agent/agent/state"
	configx "github.com/tanpawarit/ecom-support-agent/pkg/config"
	_ "github.com/tanpawarit/ecom-support-agent/pkg/logger/autoload"
	openrouterx "github.com/tanpawarit/ecom-support-agent/pkg/openrouter"
	postgresx "github.com/tanpawarit/ecom-support-agent/pkg/postgres"
	redisx "github.com/tanpawarit/ecom-support-agent/pkg/redis"
)

type AppConfig struct {
	SessionID      string `envconfig:"SESSION_ID" default:"local-session"`
	SessionStore   string `envconfig:"SESSION_STORE" default:"memory"` // memory | redis
	ContactSink    string `envconfig:"CONTACT_SINK" default:"csv"`     // csv | postgres
	ContactLogPath string `envconfig:"CONTACT_LOG_PATH" default:"customer_requests.csv"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")
	ctx := context.Background()

	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	backend := openrouterx.MustNew(*openRouterCfg)

	ledger := catalogx.NewOrderLedger()
	policies := catalogx.NewPolicyStore()

	sink, err := newContactSink(ctx, appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize contact sink")
	}

	store, err := newSessionStore(appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session store")
	}

	orch, err := orchestratorx.New(store, ledger, policies, sink, backend)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize orchestrator")
	}
	eval := evaluatorx.New(ledger)

	runChat(ctx, orch, eval, appCfg.SessionID)
}

func newContactSink(ctx context.Context, cfg *AppConfig) (contractx.ContactSink, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.ContactSink)) {
	case "postgres":
		pgCfg := configx.MustNew[postgresx.Config]("POSTGRES")
		db, err := pgCfg.New()
		if err != nil {
			return nil, err
		}
		return contactx.NewPostgresSink(ctx, db)
	default:
		return contactx.NewCSVSink(cfg.ContactLogPath)
	}
}

func newSessionStore(cfg *AppConfig) (statex.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SessionStore)) {
	case "redis":
		redisCfg := configx.MustNew[redisx.Config]("REDIS")
		client, err := redisCfg.New()
		if err != nil {
			return nil, err
		}
		return statex.NewRedisStore(client)
	default:
		return statex.NewMemoryStore(), nil
	}
}

func runChat(ctx context.Context, orch *orchestratorx.Orchestrator, eval *evaluatorx.Evaluator, sessionID string) {
	fmt.Println("E-commerce Customer Support")
	fmt.Println("Welcome! How can I help you today? (empty line or Ctrl-D to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			break
		}

		start := time.Now()
		reply, err := orch.HandleMessage(ctx, sessionID, input)
		elapsed := time.Since(start).Seconds()
		if err != nil {
			// Backend and persistence failures surface as errors, never as
			// fabricated chat text.
			log.Error().Err(err).Str("session_id", sessionID).Msg("turn failed")
			fmt.Println("[error] something went wrong processing that message")
			continue
		}

		fmt.Println(reply)
		eval.Evaluate(input, reply, elapsed)
	}

	printSummary(eval)
}

func printSummary(eval *evaluatorx.Evaluator) {
	summary := eval.SummaryMetrics()
	fmt.Println("\nChatbot Performance Metrics")
	fmt.Printf("  Total Conversations: %d\n", summary.TotalConversations)
	fmt.Printf("  Average Accuracy:    %.2f%%\n", summary.AverageAccuracy*100)
	fmt.Printf("  Average Relevance:   %.2f%%\n", summary.AverageRelevance*100)
	fmt.Printf("  Avg Response Time:   %.2fs\n", summary.AverageResponseTime)
}
