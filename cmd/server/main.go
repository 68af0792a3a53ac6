package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/travelbooking/internal/apiclient"
	"github.com/dharmasatrya/travelbooking/internal/handler"
	"github.com/dharmasatrya/travelbooking/internal/ratelimit"
	"github.com/dharmasatrya/travelbooking/internal/session"
	"github.com/dharmasatrya/travelbooking/internal/workflow"
)

type Config struct {
	Port           string
	APIURL         string
	AppURL         string
	SessionBackend string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	SessionTTL     time.Duration
	APITimeout     time.Duration
	UpstreamRPS    float64
	UpstreamBurst  int
	BookingFee     float64
	Debug          bool
}

func main() {
	cfg := loadConfig()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.InfoContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization, handler.HeaderSessionID},
		ExposeHeaders: []string{handler.HeaderSessionID},
	}))
	e.Use(middleware.RequestID())

	store, err := initializeStore(cfg)
	if err != nil {
		slog.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	rateLimiter := ratelimit.NewOperationLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.UpstreamRPS,
		BurstSize:         cfg.UpstreamBurst,
	})
	rateLimiter.SetLimit(ratelimit.OpAuth, cfg.UpstreamRPS/2, cfg.UpstreamBurst/2+1)

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
		Limiter: rateLimiter,
	})

	svc := workflow.NewService(client, workflow.Config{
		AppURL:     cfg.AppURL,
		BookingFee: cfg.BookingFee,
	})

	h := handler.NewHandler(svc, store, client)
	h.Routes(e.Group("/api/v1"))
	e.GET("/health", handler.HealthHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting booking gateway", "port", cfg.Port, "api_url", cfg.APIURL, "session_backend", cfg.SessionBackend)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	apiURL := getEnv("API_URL", getEnv("NEXT_PUBLIC_API_URL", "http://localhost:8000/api/v1"))

	return Config{
		Port:           getEnv("PORT", "8080"),
		APIURL:         apiURL,
		AppURL:         getEnv("APP_URL", "http://localhost:3000"),
		SessionBackend: getEnv("SESSION_BACKEND", "redis"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 2*time.Hour),
		APITimeout:     getEnvDuration("API_TIMEOUT", apiclient.DefaultTimeout),
		UpstreamRPS:    getEnvFloat("UPSTREAM_RPS", ratelimit.DefaultConfig().RequestsPerSecond),
		UpstreamBurst:  getEnvInt("UPSTREAM_BURST", ratelimit.DefaultConfig().BurstSize),
		BookingFee:     getEnvFloat("BOOKING_FEE", workflow.DefaultBookingFee),
		Debug:          getEnvBool("DEBUG", false),
	}
}

func initializeStore(cfg Config) (session.Store, error) {
	switch cfg.SessionBackend {
	case "memory":
		slog.Info("using in-memory session store")
		return session.NewMemoryStore(), nil
	case "none":
		slog.Warn("session storage disabled, booking state will not survive between requests")
		return session.NewNoOpStore(), nil
	}

	store, err := session.NewRedisStore(session.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		TTL:      cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("redis session store enabled",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"ttl", cfg.SessionTTL.String(),
	)
	return store, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
