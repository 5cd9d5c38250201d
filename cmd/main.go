package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/gw-login-portal/internal/facades"
	"github.com/sbilibin2017/gw-login-portal/internal/handlers"
	"github.com/sbilibin2017/gw-login-portal/internal/jwt"
	"github.com/sbilibin2017/gw-login-portal/internal/logger"
	"github.com/sbilibin2017/gw-login-portal/internal/repositories"
	"github.com/sbilibin2017/gw-login-portal/internal/services"
	"github.com/sbilibin2017/gw-login-portal/internal/sessions"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Storage backends.
const (
	storageMemory = "memory"
	storageRedis  = "redis"
)

type config struct {
	AppHost      string
	AppPort      string
	LogLevel     string
	LogFormat    string
	CookieSecure bool

	AuthAPIURL     string
	AuthAPITimeout time.Duration

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	StorageBackend    string
	StorageExp        time.Duration
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	JWTSecretKey string
	JWTExp       time.Duration

	SessionHashKey  string
	SessionBlockKey string
	SessionIdle     time.Duration

	RedirectDelay time.Duration
}

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Second, err
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")
	if cfg.CookieSecure, err = strconv.ParseBool(getEnv("APP_COOKIE_SECURE", "false")); err != nil {
		return cfg, fmt.Errorf("APP_COOKIE_SECURE: %w", err)
	}

	// Remote auth API config
	cfg.AuthAPIURL = getEnv("AUTH_API_URL", "")
	if cfg.AuthAPITimeout, err = getSeconds("AUTH_API_TIMEOUT_SECOND", "10"); err != nil {
		return
	}

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Storage config
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", storageMemory)
	if cfg.StorageBackend != storageMemory && cfg.StorageBackend != storageRedis {
		return cfg, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend)
	}
	if cfg.StorageExp, err = getSeconds("STORAGE_EXP_SECOND", "86400"); err != nil {
		return
	}
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExp, err = getSeconds("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	// Session config
	cfg.SessionHashKey = getEnv("SESSION_HASH_KEY", "")
	cfg.SessionBlockKey = getEnv("SESSION_BLOCK_KEY", "")
	if cfg.SessionIdle, err = getSeconds("SESSION_IDLE_SECOND", "1800"); err != nil {
		return
	}

	delayMS, err := getInt("REDIRECT_DELAY_MS", "2000")
	if err != nil {
		return
	}
	cfg.RedirectDelay = time.Duration(delayMS) * time.Millisecond

	return cfg, nil
}

// newAuthenticator picks the remote auth API when configured and the local
// accounts database otherwise. The returned func releases its resources.
func newAuthenticator(ctx context.Context, cfg config, tokens *jwt.JWT) (services.Authenticator, func(), error) {
	if cfg.AuthAPIURL != "" {
		logger.Log.Infow("using remote auth API", "url", cfg.AuthAPIURL)
		client := &http.Client{Timeout: cfg.AuthAPITimeout}
		return facades.NewAuthHTTPFacade(cfg.AuthAPIURL, client), func() {}, nil
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if _, err := db.ExecContext(ctx, repositories.UsersSchema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to apply users schema: %w", err)
	}

	userReadRepo := repositories.NewUserReadRepository(db)
	return services.NewAuthService(userReadRepo, tokens), func() { db.Close() }, nil
}

// newBackend opens the storage the login page writes the email to.
func newBackend(ctx context.Context, cfg config) (sessions.Backend, func(), error) {
	if cfg.StorageBackend != storageRedis {
		return repositories.NewMemoryStorage(cfg.StorageExp), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("redis connection error: %w", err)
	}
	return repositories.NewRedisStorage(rdb, cfg.StorageExp), func() { rdb.Close() }, nil
}

// newCookieCodec builds the session cookie codec. Without a configured hash
// key a random one is generated and sessions do not survive a restart.
func newCookieCodec(cfg config) (*sessions.CookieCodec, error) {
	hashKey := []byte(cfg.SessionHashKey)
	if len(hashKey) == 0 {
		logger.Log.Infow("SESSION_HASH_KEY not set, using a random key")
		hashKey = securecookie.GenerateRandomKey(32)
	}
	return sessions.NewCookieCodec(hashKey, []byte(cfg.SessionBlockKey), cfg.SessionIdle, cfg.CookieSecure)
}

// run initializes the logger, auth backend, storage, sessions and HTTP server.
// It handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tokens := jwt.New(cfg.JWTSecretKey, cfg.JWTExp)

	auth, closeAuth, err := newAuthenticator(ctx, cfg, tokens)
	if err != nil {
		return err
	}
	defer closeAuth()

	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	codec, err := newCookieCodec(cfg)
	if err != nil {
		return err
	}

	registry := sessions.NewRegistry(auth, backend,
		sessions.WithIdleTimeout(cfg.SessionIdle),
		sessions.WithLoginOptions(services.WithRedirectDelay(cfg.RedirectDelay)),
	)
	defer registry.Close()
	go registry.Run(ctx, time.Minute)

	router := handlers.NewRouter(handlers.RouterConfig{
		Sessions: registry,
		Cookie:   codec,
		Tokener:  tokens,
		TokenCookie: handlers.TokenCookie{
			TTL:    cfg.JWTExp,
			Secure: cfg.CookieSecure,
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infow("shutdown signal received, stopping HTTP server")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Infow("HTTP server stopped gracefully")
	return nil
}
