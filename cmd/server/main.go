package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/ugalabz/oracle-server/internal/adapter/ai"
	"github.com/ugalabz/oracle-server/internal/adapter/search"
	"github.com/ugalabz/oracle-server/internal/adapter/store"
	"github.com/ugalabz/oracle-server/internal/handler"
	"github.com/ugalabz/oracle-server/internal/port"
	"github.com/ugalabz/oracle-server/internal/service"
	"github.com/ugalabz/oracle-server/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("starting oracle server",
		"port", cfg.Port,
		"embed_model", cfg.EmbedModel,
		"chat_model", cfg.ChatModel,
		"docs_dir", cfg.DocsDir,
	)

	// ── Stores ───────────────────────────────────────────────────────────
	var (
		agentStore port.AgentStore
		chunkStore port.ChunkStore
	)
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		agentStore = pgStore
		chunkStore = store.NewVectorStore(pgStore)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory store")
		memStore := store.NewSeededMemoryStore()
		agentStore = memStore
		chunkStore = memStore
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	openAI := ai.NewOpenAIProvider(ai.Config{
		BaseURL:        cfg.OpenAIBaseURL,
		APIKey:         cfg.OpenAIAPIKey,
		EmbedModel:     cfg.EmbedModel,
		EmbedDimension: cfg.EmbeddingDimension,
		ChatModel:      cfg.ChatModel,
		Timeout:        time.Duration(cfg.OpenAITimeout) * time.Second,
	})
	braveSearch := search.NewBraveClient(cfg.BraveAPIKey, time.Duration(cfg.WebSearchTimeout)*time.Millisecond)

	// ── Services ─────────────────────────────────────────────────────────
	classifier := service.NewRelevanceClassifier(service.DefaultCategoryRules())
	indexer := service.NewIndexer(openAI, chunkStore)
	webSearcher := service.NewWebSearcher(braveSearch, classifier, service.DefaultTrustedDomains)
	oracle := service.NewOracle(openAI, indexer, webSearcher, classifier, service.DefaultPersonas())
	seeder := service.NewSeeder(indexer, cfg.DocsDir)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	// Health check
	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	api := app.Group("/api/v1")

	agentHandler := handler.NewAgentHandler(agentStore)
	agentHandler.Register(api)

	chatHandler := handler.NewChatHandler(agentStore, oracle)
	chatHandler.Register(api)

	oracleHandler := handler.NewOracleHandler(oracle)
	oracleHandler.Register(api)

	documentHandler := handler.NewDocumentHandler(seeder, indexer)
	documentHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
