package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitmentor/internal/builder"
	"github.com/2beens/fitmentor/internal/config"
	"github.com/2beens/fitmentor/internal/connectivity"
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/middleware"
	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/render"
	"github.com/2beens/fitmentor/internal/session"
	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/internal/telemetry/tracing"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	redisClient *redis.Client
	apiClient   *fitapi.Client
	sessions    *session.Store
	watcher     *connectivity.Watcher
	rateLimiter middleware.RequestRateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
	stopWatcher    context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, errors.New("config not set")
	}

	layout, err := render.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	metricsManager, promRegistry := metrics.NewServiceManager("fitmentor", "webclient")
	metricsManager.GaugeLifeSignal.Set(0)

	// redis is optional: without it submissions are rate limited in process
	var rdb *redis.Client
	var rateLimiter middleware.RequestRateLimiter
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}
		rateLimiter = redis_rate.NewLimiter(rdb)
	} else {
		log.Warnln("redis not configured, using local rate limiter")
		rateLimiter = middleware.NewLocalRateLimiter()
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitmentor-webclient", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	requestTimeout := time.Duration(cfg.ApiTimeoutSeconds) * time.Second
	apiClient := fitapi.NewClient(
		cfg.ApiBaseURL,
		tracedHttpClient,
		time.Duration(cfg.ExercisesCacheMinutes)*time.Minute,
		metricsManager,
	)
	log.Infof("calculation service: %s", apiClient.BaseURL())

	sessions := session.NewStore(
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		session.Options{
			Client:         apiClient,
			Layout:         layout,
			WorkoutOptions: workoutOptions(cfg),
			RequestTimeout: requestTimeout,
			MetricsManager: metricsManager,
		},
		metricsManager,
	)

	watcher := connectivity.NewWatcher(
		apiClient,
		time.Duration(cfg.ConnectivityCheckSeconds)*time.Second,
		metricsManager,
	)
	watcher.OnLost(func() {
		sessions.Broadcast(orchestrator.Notice{
			Kind:    orchestrator.NoticeOffline,
			Message: connectivity.OfflineMessage,
		})
	})

	return &Server{
		config:      cfg,
		redisClient: rdb,
		apiClient:   apiClient,
		sessions:    sessions,
		watcher:     watcher,
		rateLimiter: rateLimiter,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func workoutOptions(cfg *config.Config) builder.WorkoutOptions {
	return builder.WorkoutOptions{
		IncludeGender:               cfg.IncludeGender,
		IncludeSessionDurationField: cfg.IncludeSessionDuration,
		DefaultSessionDuration:      cfg.DefaultSessionDuration,
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("webclient-router"))

	var redisClient redis.Cmdable
	if s.redisClient != nil {
		redisClient = s.redisClient
	}

	handler := NewHandler(NewHandlerParams{
		Sessions:       s.sessions,
		Exercises:      s.apiClient,
		Watcher:        s.watcher,
		RedisClient:    redisClient,
		WorkoutOptions: workoutOptions(s.config),
		SecureCookies:  s.config.IsProduction(),
		TrustedProxies: s.config.TrustedProxies,
	})
	handler.SetupRoutes(r, s.rateLimiter, s.metricsManager, s.config.SubmitRateLimitPerMin)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// submissions wait for the calculation service
		WriteTimeout: time.Duration(s.config.ApiTimeoutSeconds)*time.Second + 15*time.Second,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("webclient, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	watcherCtx, cancel := context.WithCancel(ctx)
	s.stopWatcher = cancel
	go s.watcher.Run(watcherCtx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.stopWatcher != nil {
		s.stopWatcher()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
