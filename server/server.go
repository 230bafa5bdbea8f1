package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/ethereum/go-ethereum/log"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/primitivehl/whitelist-checker/adapters/webfile"
	"github.com/primitivehl/whitelist-checker/checker"
	"github.com/primitivehl/whitelist-checker/database"
	"github.com/primitivehl/whitelist-checker/metrics"
	"github.com/primitivehl/whitelist-checker/whitelist"
)

var Now = time.Now // used to mock time in tests

const sessionEvictionInterval = time.Minute

type WhitelistCheckerServer struct {
	server            *http.Server
	logger            log.Logger
	startTime         time.Time
	version           string
	listenAddress     string
	sources           []string
	loader            whitelist.ListLoader
	sessions          *SessionStore
	db                database.Store
	minCheckDuration  time.Duration
	shutdownDrainTime time.Duration
	redisStore        *whitelist.RedisSnapshotStore
	redisServer       *miniredis.Miniredis
	stop              chan struct{}
}

func NewWhitelistCheckerServer(cfg Configuration) (*WhitelistCheckerServer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &WhitelistCheckerServer{
		logger:            cfg.Logger,
		startTime:         Now(),
		version:           cfg.Version,
		listenAddress:     cfg.ListenAddress,
		sources:           cfg.Sources,
		sessions:          NewSessionStore(cfg.SessionTTL),
		db:                cfg.DB,
		minCheckDuration:  cfg.MinimumCheckDuration,
		shutdownDrainTime: cfg.ShutdownDrainTime,
		stop:              make(chan struct{}),
	}

	sources := make([]whitelist.Source, 0, len(cfg.Sources))
	for _, u := range cfg.Sources {
		sources = append(sources, webfile.NewFetcher(u, cfg.SourceTimeout).WithMaxBodySize(cfg.SourceMaxBytes))
	}
	var loader whitelist.ListLoader = whitelist.NewLoader(cfg.Logger, sources...)

	if cfg.ListCacheTTL > 0 {
		store, err := s.snapshotStore(cfg.RedisUrl)
		if err != nil {
			return nil, err
		}
		loader = whitelist.NewCachedLoader(cfg.Logger, loader, store, cfg.ListCacheTTL)
		cfg.Logger.Info("List cache enabled", "ttl", cfg.ListCacheTTL, "redis", cfg.RedisUrl != "")
	}
	s.loader = loader

	statuses := make([]string, 0, len(checker.TerminalStatuses))
	for _, st := range checker.TerminalStatuses {
		statuses = append(statuses, st.String())
	}
	metrics.InitCheckStatusMetrics(statuses...)

	s.server = &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

func (s *WhitelistCheckerServer) snapshotStore(redisUrl string) (whitelist.SnapshotStore, error) {
	if redisUrl == "" {
		return whitelist.NewMemorySnapshotStore(), nil
	}
	if redisUrl == "dev" {
		s.logger.Info("Using integrated in-memory Redis instance")
		redisServer, err := miniredis.Run()
		if err != nil {
			return nil, err
		}
		s.redisServer = redisServer
		redisUrl = redisServer.Addr()
	}

	s.logger.Info("Connecting to redis...", "redisUrl", redisUrl)
	store, err := whitelist.NewRedisSnapshotStore(redisUrl)
	if err != nil {
		return nil, errors.Wrap(err, "Redis init error")
	}
	s.redisStore = store
	return store, nil
}

func (s *WhitelistCheckerServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware)

	r.Get("/health", s.handleHealthRequest)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/check", s.handleCheck)
		r.Get("/list", s.handleListInfo)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Post("/sessions/{id}/submit", s.handleSubmit)
		r.Get("/sessions/{id}/ws", s.handleSessionStream)
	})
	return r
}

// Start serves until Shutdown is called.
func (s *WhitelistCheckerServer) Start() error {
	s.logger.Info("Starting whitelist-checker", "version", s.version, "listenAddress", s.listenAddress, "sources", s.sources)

	s.SpawnRegularTasks()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "Failed to start whitelist-checker")
	}
	return nil
}

func (s *WhitelistCheckerServer) Shutdown(ctx context.Context) error {
	close(s.stop)
	if s.shutdownDrainTime > 0 {
		s.logger.Info("Draining before shutdown", "drainTime", s.shutdownDrainTime)
		select {
		case <-time.After(s.shutdownDrainTime):
		case <-ctx.Done():
		}
	}

	err := s.server.Shutdown(ctx)
	s.sessions.CloseAll()
	if s.redisStore != nil {
		s.redisStore.Close()
	}
	if s.redisServer != nil {
		s.redisServer.Close()
	}
	return err
}

func (s *WhitelistCheckerServer) SpawnRegularTasks() {
	// All 10 seconds: print some debug info
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.logger.Debug("[server] stats", "num-goroutines", runtime.NumGoroutine(), "sessions", s.sessions.Len())
			case <-s.stop:
				return
			}
		}
	}()

	// Every minute: drop sessions nobody looked at within the ttl
	go func() {
		ticker := time.NewTicker(sessionEvictionInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := s.sessions.EvictExpired(); n > 0 {
					s.logger.Info("[server] evicted idle sessions", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}
