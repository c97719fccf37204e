package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/leo88345/Marketlive/db"
	"github.com/leo88345/Marketlive/internal/dedup"
	"github.com/leo88345/Marketlive/internal/handler"
	"github.com/leo88345/Marketlive/internal/hub"
	"github.com/leo88345/Marketlive/internal/pipeline"
	"github.com/leo88345/Marketlive/internal/poller"
	"github.com/leo88345/Marketlive/pkg/llm"
	"github.com/leo88345/Marketlive/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Seen-state lives in memory unless a Redis is configured to share it.
	var store dedup.Store = dedup.NewMemoryStore()
	if os.Getenv("REDIS_URL") != "" {
		err := db.ConnectRedis()
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		store = dedup.NewRedisStore(db.Redis)
		slog.Info("using redis seen-state store")
	}
	filter := dedup.NewFilter(store)

	var backends []llm.Classifier
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		backends = append(backends, llm.NewOpenAIClient(key))
	} else {
		slog.Warn("OPENAI_API_KEY not set, openai backend disabled")
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		backends = append(backends, llm.NewAnthropicClient(key))
	}

	ollamaURL := os.Getenv("OLLAMA_BASE_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	backends = append(backends, llm.NewOllamaClient(ollamaURL))

	gateway := llm.NewGateway(backends...)
	if name := os.Getenv("CLASSIFIER_BACKEND"); name != "" {
		if err := gateway.SetBackend(name); err != nil {
			slog.Error("invalid CLASSIFIER_BACKEND, keeping default", "error", err, "default", gateway.Backend())
		}
	}
	slog.Info("classification backend active", "backend", gateway.Backend())

	threshold := pipeline.DefaultThreshold
	if v := os.Getenv("IMPORTANCE_THRESHOLD"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Error("invalid IMPORTANCE_THRESHOLD, keeping default", "value", v)
		} else {
			threshold = parsed
		}
	}

	broadcastHub := hub.New()
	pipe := pipeline.New(filter, gateway, broadcastHub, threshold)

	pollInterval := intervalFromEnv("POLL_INTERVAL_SECONDS", poller.DefaultPollInterval)
	retryInterval := intervalFromEnv("RETRY_INTERVAL_SECONDS", poller.DefaultRetryInterval)

	var sources []poller.Config
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		sources = append(sources, poller.Config{
			Source:        news.NewFinnhubSource(key),
			PollInterval:  pollInterval,
			RetryInterval: retryInterval,
		})
	} else {
		slog.Warn("FINNHUB_API_KEY not set, Finnhub poller disabled")
	}
	if key := os.Getenv("POLYGON_API_KEY"); key != "" {
		// Polygon free tier allows 5 requests per minute.
		polygonPoll := pollInterval
		if polygonPoll < 12*time.Second {
			polygonPoll = 12 * time.Second
		}
		sources = append(sources, poller.Config{
			Source:        news.NewPolygonSource(key),
			PollInterval:  polygonPoll,
			RetryInterval: retryInterval,
		})
	} else {
		slog.Warn("POLYGON_API_KEY not set, Polygon poller disabled")
	}

	supervisor := poller.NewSupervisor(pipe, sources...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		supervisor.Run(ctx)
	}()

	streamHandler := handler.NewStreamHandler(broadcastHub)
	opsHandler := handler.NewOpsHandler(broadcastHub, filter, gateway, threshold, supervisor.Sources())

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/ws", streamHandler.Connect)
	r.GET("/api/status", opsHandler.GetStatus)
	r.POST("/api/configure", opsHandler.Configure)
	r.POST("/api/test-news", opsHandler.SendTestNews)
	r.GET("/health", opsHandler.GetHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("error starting server: %v", err)
		}
	}()

	slog.Info("news classification service started", "port", port, "sources", supervisor.Sources())

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)

	wg.Wait()
	broadcastHub.Shutdown()
}

func intervalFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(v)
	if err != nil || seconds <= 0 {
		slog.Error("invalid interval, keeping default", "key", key, "value", v)
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
