package fx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/chat"
	"github.com/amityadav/studybuddy/internal/config"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/dictionary"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/notifications"
	"github.com/amityadav/studybuddy/internal/server"
	"github.com/amityadav/studybuddy/internal/settings"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/amityadav/studybuddy/internal/youtube"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// ServerModule provides the REST handler and starts the HTTP server
var ServerModule = fx.Module("server",
	fx.Provide(
		NewHandler,
		NewRouter,
	),
	fx.Invoke(
		StartHTTPServer,
		StartNotificationWorker,
	),
)

// HandlerParams groups all services exposed over REST
type HandlerParams struct {
	fx.In
	Store        *store.Store
	Orchestrator *core.Orchestrator
	Library      *core.Library
	Learning     *core.LearningCore
	Research     *core.ResearchService
	Tracker      *stats.Tracker
	Settings     *settings.Service
	Dictionary   *dictionary.Client
	Videos       *youtube.Client
	Speaker      *ai.Speaker
	Tutor        *chat.Tutor
	Logger       *logger.Logger
}

func NewHandler(p HandlerParams) *server.Handler {
	return server.NewHandler(server.Services{
		Store:        p.Store,
		Orchestrator: p.Orchestrator,
		Library:      p.Library,
		Learning:     p.Learning,
		Tracker:      p.Tracker,
		Settings:     p.Settings,
		Research:     p.Research,
		Dictionary:   p.Dictionary,
		Videos:       p.Videos,
		Speech:       p.Speaker,
		Tutor:        p.Tutor,
	}, p.Logger)
}

func NewRouter(h *server.Handler, cfg config.Config, log *logger.Logger) *gin.Engine {
	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return server.NewRouter(h, cfg.APIKey, log)
}

// StartHTTPServer starts the HTTP server with lifecycle management
func StartHTTPServer(lc fx.Lifecycle, router *gin.Engine, cfg config.Config, log *logger.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := net.Listen("tcp", cfg.HTTPAddr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("[FX] HTTP Server listening", "addr", cfg.HTTPAddr, "apiKeyRequired", cfg.APIKey != "")
				if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("[FX] HTTP Server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("[FX] Shutting down HTTP server...")
			return srv.Shutdown(ctx)
		},
	})
}

// WorkerStartParams for optional worker injection
type WorkerStartParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	Worker    *notifications.Worker `optional:"true"`
}

// StartNotificationWorker starts the reminder worker if available
func StartNotificationWorker(p WorkerStartParams) {
	if p.Worker == nil {
		return
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return p.Worker.Start()
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			return nil
		},
	})
}
