package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
	"github.com/primitivehl/whitelist-checker/adapters/webfile"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/database"
	"github.com/primitivehl/whitelist-checker/metrics"
	"github.com/primitivehl/whitelist-checker/server"
)

var (
	version = "dev" // is set during build process

	// defaults
	defaultListenAddress     = "127.0.0.1:9000"
	defaultMetricsAddress    = "127.0.0.1:9090"
	defaultSources           = "http://127.0.0.1:8090/eligible.txt,http://127.0.0.1:8090/eligible2.txt"
	defaultSourceTimeout     = 10 * time.Second
	defaultSessionTTL        = 30 * time.Minute
	defaultShutdownDrainTime = 0 * time.Second
)

func main() {
	// .env values only fill in variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	var (
		versionPtr        = flag.Bool("version", false, "just print the program version")
		listenAddress     = flag.String("listen", getEnvAsStrOrDefault("LISTEN_ADDR", defaultListenAddress), "Listen address")
		metricsAddress    = flag.String("metrics-listen", getEnvAsStrOrDefault("METRICS_ADDR", defaultMetricsAddress), "Listen address for /metrics (empty to disable)")
		sources           = flag.String("sources", getEnvAsStrOrDefault("SOURCES", defaultSources), "Comma separated URLs of the eligibility lists")
		sourcesFile       = flag.String("sources-file", os.Getenv("SOURCES_FILE"), "YAML file listing the eligibility list URLs (overrides -sources)")
		minCheckDuration  = flag.Duration("min-check-duration", getEnvAsDurationOrDefault("MIN_CHECK_DURATION", checker.DefaultMinimumCheckDuration), "minimum time a check stays in the loading state")
		sourceMaxBytes    = flag.Int64("source-max-bytes", getEnvAsInt64OrDefault("SOURCE_MAX_BYTES", webfile.DefaultMaxBodySize), "largest accepted list download in bytes")
		sourceTimeout     = flag.Duration("source-timeout", getEnvAsDurationOrDefault("SOURCE_TIMEOUT", defaultSourceTimeout), "timeout for fetching a single list")
		listCacheTTL      = flag.Duration("list-cache-ttl", getEnvAsDurationOrDefault("LIST_CACHE_TTL", 0), "reuse the combined list for this long (0 fetches on every check)")
		redisUrl          = flag.String("redis", os.Getenv("REDIS_URL"), "Redis address for the list cache (use 'dev' to use integrated in-memory redis, empty for process memory)")
		psqlDsn           = flag.String("psql", os.Getenv("POSTGRES_DSN"), "Postgres DSN for check records")
		sessionTTL        = flag.Duration("session-ttl", getEnvAsDurationOrDefault("SESSION_TTL", defaultSessionTTL), "evict sessions idle for this long")
		shutdownDrainTime = flag.Duration("drain", getEnvAsDurationOrDefault("SHUTDOWN_DRAIN_TIME", defaultShutdownDrainTime), "wait before shutting down the listener")
		debugPtr          = flag.Bool("debug", os.Getenv("DEBUG") == "1", "print debug output")
		logJSONPtr        = flag.Bool("log-json", os.Getenv("LOG_JSON") == "1", "log in JSON")
		serviceName       = flag.String("serviceName", getEnvAsStrOrDefault("SERVICE_NAME", "whitelist-checker"), "name of the service which will be used in the logs")
	)
	flag.Parse()

	logLevel := log.LevelInfo
	if *debugPtr {
		logLevel = log.LevelDebug
	}
	var handler slog.Handler = log.NewTerminalHandlerWithLevel(os.Stderr, logLevel, true)
	if *logJSONPtr {
		handler = log.JSONHandlerWithLevel(os.Stderr, logLevel)
	}
	log.SetDefault(log.NewLogger(handler))
	logger := log.New("service", *serviceName)

	// Perhaps print only the version
	if *versionPtr {
		logger.Info("whitelist-checker", "version", version)
		return
	}

	logger.Info("Init whitelist-checker", "version", version)

	sourceList := server.ParseSourcesList(*sources)
	if *sourcesFile != "" {
		var err error
		sourceList, err = server.ReadSourcesFromFile(*sourcesFile)
		if err != nil {
			logger.Crit("Cannot read sources file", "file", *sourcesFile, "error", err)
		}
	}

	// Setup database
	var db database.Store
	if *psqlDsn == "" {
		db = database.NewMockStore()
	} else {
		db = database.NewPostgresStore(*psqlDsn)
	}

	s, err := server.NewWhitelistCheckerServer(server.Configuration{
		DB:                   db,
		Logger:               logger,
		ListenAddress:        *listenAddress,
		Sources:              sourceList,
		SourceTimeout:        *sourceTimeout,
		SourceMaxBytes:       *sourceMaxBytes,
		MinimumCheckDuration: *minCheckDuration,
		ListCacheTTL:         *listCacheTTL,
		RedisUrl:             *redisUrl,
		SessionTTL:           *sessionTTL,
		Version:              version,
		ShutdownDrainTime:    *shutdownDrainTime,
	})
	if err != nil {
		logger.Crit("Server init error", "error", err)
	}

	if *metricsAddress != "" {
		metricsServer := metrics.DefaultServer(*metricsAddress)
		go func() {
			logger.Info("Starting metrics server", "listenAddress", *metricsAddress)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
		defer metricsServer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Crit("Server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownDrainTime+10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}
}

func getEnvAsStrOrDefault(key string, defaultValue string) string {
	ret := os.Getenv(key)
	if ret == "" {
		ret = defaultValue
	}
	return ret
}

// getEnvAsDurationOrDefault accepts Go durations ("800ms") or whole seconds.
func getEnvAsDurationOrDefault(name string, defaultValue time.Duration) time.Duration {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := time.ParseDuration(valueStr); err == nil {
			return value
		}
		if value, err := strconv.Atoi(valueStr); err == nil {
			return time.Duration(value) * time.Second
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(name string, defaultValue int64) int64 {
	if valueStr, exists := os.LookupEnv(name); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return defaultValue
}
