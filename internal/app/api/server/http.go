package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fatflowers/frontdesk/docs"
	"github.com/fatflowers/frontdesk/internal/app/api/handlers"
	mw "github.com/fatflowers/frontdesk/internal/app/api/middleware"
	"github.com/fatflowers/frontdesk/internal/app/service/checkin"
	"github.com/fatflowers/frontdesk/internal/app/service/membership"
	"github.com/fatflowers/frontdesk/internal/app/service/revenue"
	"github.com/fatflowers/frontdesk/internal/app/service/statistics"
	cfgpkg "github.com/fatflowers/frontdesk/pkg/config"
	"github.com/fatflowers/frontdesk/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env == cfgpkg.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeParams struct {
	fx.In

	Engine     *gin.Engine
	Log        *zap.SugaredLogger
	Config     *cfgpkg.Config
	CheckIns   *checkin.Service
	Members    *membership.Service
	Payments   *revenue.Service
	Statistics *statistics.Service
}

func registerRoutes(p routeParams) error {
	r, log := p.Engine, p.Log
	if p.Config.MetricsAddr != "" {
		httpMetrics, err := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer, nil)
		if err != nil {
			return fmt.Errorf("failed to register http metrics: %w", err)
		}
		r.Use(httpMetrics.HandlerFunc())
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterCheckInRoutes(apiV1, p.CheckIns, log)
	handlers.RegisterMemberRoutes(apiV1, p.Members, log)

	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), handlers.AdminServices{
		Members:    p.Members,
		CheckIns:   p.CheckIns,
		Payments:   p.Payments,
		Statistics: p.Statistics,
	}, log)
	return nil
}

func runServer(lc fx.Lifecycle, sd fx.Shutdowner, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	var metricsSrv *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = metrics.NewServer(cfg.MetricsAddr, log)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("server error", "error", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			if metricsSrv != nil {
				metricsSrv.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			if metricsSrv != nil {
				if err := metricsSrv.Stop(shutdownCtx); err != nil {
					log.Warnw("failed to stop metrics server", "error", err)
				}
			}
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
