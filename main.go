package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	appconfig "github.com/fieldlens/concierge/config"
	"github.com/fieldlens/concierge/internal/adapter/llm"
	"github.com/fieldlens/concierge/internal/capability"
	"github.com/fieldlens/concierge/internal/dataset"
	"github.com/fieldlens/concierge/internal/knowledge"
	"github.com/fieldlens/concierge/internal/router"
	"github.com/fieldlens/concierge/internal/service"
	"github.com/fieldlens/concierge/internal/session"
	v1 "github.com/fieldlens/concierge/internal/transport/http/v1"
	"github.com/fieldlens/concierge/pkg/config"
	"github.com/fieldlens/concierge/pkg/logger"
	"github.com/fieldlens/concierge/policy"
)

func main() {
	cfg := config.MustNew[appconfig.Config]("CONCIERGE")
	logger.Init(cfg.Log)

	ctx := context.Background()
	mockMode := strings.EqualFold(os.Getenv("CONCIERGE_MODE"), "MOCK")

	data := dataset.Load()
	llmClient := llm.NewFromEnv(cfg.LLM)

	var classifier policy.Classifier
	if cfg.ModelGuardrail {
		classifier = policy.NewModelClassifier(llmClient)
	} else {
		engine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize policy engine")
		}
		classifier = engine
	}

	var retriever knowledge.Retriever
	var signer knowledge.Signer
	if mockMode {
		retriever = knowledge.NewMockRetriever()
		signer = knowledge.NewLocalSigner(cfg.SignSecret)
	} else {
		bedrock, err := knowledge.NewBedrockRetriever(ctx, cfg.Knowledge)
		if err != nil {
			// Leave the primary retriever unset so the knowledge
			// capability serves its fallback, flagged as such.
			log.Warn().Err(err).Msg("knowledge base unavailable, serving fallback answers")
			signer = knowledge.NewLocalSigner(cfg.SignSecret)
		} else {
			s3signer, err := knowledge.NewS3Signer(ctx, cfg.Knowledge.Region, cfg.SignExpiry)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize reference signer")
			}
			retriever = bedrock
			signer = s3signer
		}
	}

	registry := capability.NewRegistry()
	registry.MustRegister(capability.NewOrders(data))
	registry.MustRegister(capability.NewEngagements(data))
	registry.MustRegister(capability.NewCompliance(data))
	registry.MustRegister(capability.NewAnalytics(data))
	registry.MustRegister(capability.NewKnowledge(retriever))

	var selector router.Selector = router.NewRuleSelector()
	if cfg.ModelRouting {
		selector = router.NewModelSelector(llmClient, registry)
	}

	sessions := session.NewManager(cfg.SessionDir)
	defer sessions.CloseAll()

	orchestrator := service.NewOrchestrator(
		classifier,
		selector,
		router.NewDispatcher(registry),
		sessions,
		service.Options{Timeout: cfg.QueryTimeout, Model: llmClient.ModelName()},
	)

	h := v1.NewHandler(orchestrator, knowledge.NewResolver(signer))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	h.RegisterRoutes(e)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()
	log.Info().Int("port", cfg.HTTPPort).Bool("mock", mockMode).Msg("concierge started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
