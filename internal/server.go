package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"
	"github.com/Stitchbit30/BattleLog/internal/camp/memstore"
	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	programapi "github.com/Stitchbit30/BattleLog/internal/camp/program/api"
	"github.com/Stitchbit30/BattleLog/internal/camp/progress"
	"github.com/Stitchbit30/BattleLog/internal/config"
	"github.com/Stitchbit30/BattleLog/internal/db"
	"github.com/Stitchbit30/BattleLog/internal/middleware"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/metrics"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxRequestBodyBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool // nil with memory storage
	redisClient *redis.Client // nil when redis is not configured

	programHandler  *programapi.Handler
	profilesService *profiles.Service
	logsService     *dailylogs.Service
	progressService *progress.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type profilesCache interface {
	Get(ctx context.Context, id int) (*profiles.Profile, error)
	Set(ctx context.Context, profile *profiles.Profile) error
	Invalidate(ctx context.Context, id int) error
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	s := &Server{
		config:       cfg,
		otelShutdown: func() {},
	}

	var collectors []prometheus.Collector
	if cfg.Storage == config.StoragePostgres {
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		s.dbPool = dbPool

		if err := db.Migrate(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}

		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("battlelog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.UsesRedis() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "battlelog-backend", s.redisClient)
	if err != nil {
		s.closeStores()
		return nil, err
	}
	s.otelShutdown = otelShutdown

	def := program.Standard()
	s.programHandler, err = programapi.NewHandler(def)
	if err != nil {
		s.closeStores()
		return nil, fmt.Errorf("program handler: %w", err)
	}

	var profileCache profilesCache = profiles.NoopCache{}
	if s.redisClient != nil {
		profileCache = profiles.NewRedisCache(s.redisClient, cfg.ProfileCacheTTL())
	}

	switch cfg.Storage {
	case config.StoragePostgres:
		s.profilesService = profiles.NewService(profiles.NewRepo(s.dbPool), profileCache, s.metricsManager)
		s.logsService = dailylogs.NewService(dailylogs.NewRepo(s.dbPool), s.metricsManager)
	default:
		store := memstore.New()
		s.profilesService = profiles.NewService(store.Profiles(), profileCache, s.metricsManager)
		s.logsService = dailylogs.NewService(store.Logs(), s.metricsManager)
		log.Warnln("using in-memory storage, data is lost on restart")
	}
	s.progressService = progress.NewService(s.profilesService, s.logsService, def)

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("battlelog-router"))

	r.HandleFunc("/program", s.programHandler.HandleGetProgram).Methods("GET", "OPTIONS").Name("get-program")
	r.HandleFunc("/program/resolve", s.programHandler.HandleResolve).Methods("GET", "OPTIONS").Name("resolve-date")

	profilesHandler := profiles.NewHandler(s.profilesService)
	r.HandleFunc("/profiles", profilesHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-profile")
	r.HandleFunc("/profiles", profilesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-profiles")
	r.HandleFunc("/profiles/{id}", profilesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/profiles/{id}", profilesHandler.HandlePatch).Methods("PATCH", "OPTIONS").Name("update-profile")
	r.HandleFunc("/profiles/{id}", profilesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-profile")

	progressHandler := progress.NewHandler(s.progressService)
	r.HandleFunc("/profiles/{id}/schedule", progressHandler.HandleSchedule).Methods("GET", "OPTIONS").Name("profile-schedule")
	r.HandleFunc("/profiles/{id}/today", progressHandler.HandleToday).Methods("GET", "OPTIONS").Name("profile-today")
	r.HandleFunc("/profiles/{id}/week", progressHandler.HandleWeek).Methods("GET", "OPTIONS").Name("profile-week")
	r.HandleFunc("/profiles/{id}/summary", progressHandler.HandleSummary).Methods("GET", "OPTIONS").Name("profile-summary")
	r.HandleFunc("/profiles/{id}/report", progressHandler.HandleReport).Methods("GET", "OPTIONS").Name("profile-report")
	r.HandleFunc("/coach/athletes", progressHandler.HandleRoster).Methods("GET", "OPTIONS").Name("coach-roster")
	r.HandleFunc("/coach/athletes/{id}", progressHandler.HandleAthlete).Methods("GET", "OPTIONS").Name("coach-athlete")

	logsHandler := dailylogs.NewHandler(s.logsService)
	limitWrites := s.logWritesLimiter()
	r.HandleFunc("/logs/{profileId}", logsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/logs/{profileId}/{date}", logsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-log")
	r.Handle("/logs", limitWrites(http.HandlerFunc(logsHandler.HandleUpsert))).Methods("POST", "OPTIONS").Name("upsert-log")
	r.Handle("/logs/{profileId}/{date}", limitWrites(http.HandlerFunc(logsHandler.HandlePatch))).Methods("PATCH", "OPTIONS").Name("patch-log")
	r.Handle("/logs/{profileId}/{date}/toggle", limitWrites(http.HandlerFunc(logsHandler.HandleToggle))).Methods("POST", "OPTIONS").Name("toggle-item")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONError(w, http.StatusNotFound, "not found", "")
	})

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.LimitBody(maxRequestBodyBytes))

	return r
}

// logWritesLimiter rate limits log writes through redis; without redis or a
// configured limit it is a pass-through.
func (s *Server) logWritesLimiter() func(http.Handler) http.Handler {
	if s.redisClient == nil || s.config.LogWritesPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"log-writes",
		s.config.LogWritesPerMin,
		s.metricsManager,
	)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	if s.config.MetricsPort != 0 {
		metricsRouter := mux.NewRouter()
		metricsRouter.Handle("/metrics", otelhttp.NewHandler(
			promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
			"metrics",
		))
		metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
		s.metricsHttpServer = &http.Server{
			Addr:              metricsAddr,
			Handler:           metricsRouter,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			log.Debugf(" > metrics listening on: [%s]", metricsAddr)
			err := s.metricsHttpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("metrics service, listen and serve: %s", err)
			}
		}()
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the stores go away
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown http server: %s", err)
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Errorf(" >>> failed to gracefully shutdown metrics http server: %s", err)
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	s.closeStores()
}

func (s *Server) closeStores() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
		s.redisClient = nil
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
		s.dbPool = nil
	}
}
