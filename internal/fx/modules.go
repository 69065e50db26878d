package fx

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/amityadav/studybuddy/internal/adk/tools"
	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/chat"
	"github.com/amityadav/studybuddy/internal/config"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/dictionary"
	"github.com/amityadav/studybuddy/internal/firebase"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/notifications"
	"github.com/amityadav/studybuddy/internal/observability"
	"github.com/amityadav/studybuddy/internal/scraper"
	"github.com/amityadav/studybuddy/internal/search"
	"github.com/amityadav/studybuddy/internal/serpapi"
	"github.com/amityadav/studybuddy/internal/settings"
	"github.com/amityadav/studybuddy/internal/stats"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/amityadav/studybuddy/internal/tavily"
	"github.com/amityadav/studybuddy/internal/youtube"
	adkmodel "github.com/amityadav/studybuddy/pkg/adk/model"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"google.golang.org/genai"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides configuration, logging and the study timezone
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		NewLogger,
		NewLocation,
	),
	fx.Invoke(StartTracing),
)

// StoreModule provides the storage backend and the Store over it
var StoreModule = fx.Module("store",
	fx.Provide(
		NewBackend,
		NewStore,
	),
)

// SettingsModule provides the cached settings service
var SettingsModule = fx.Module("settings",
	fx.Provide(NewSettingsService),
)

// ScraperModule provides web scraping for link expansion
var ScraperModule = fx.Module("scraper",
	fx.Provide(NewScraper),
)

// AIModule provides the Gemini client and everything built on it
var AIModule = fx.Module("ai",
	fx.Provide(
		NewGeminiClient,
		NewEngine,
		NewSpeaker,
	),
)

// SearchModule provides search registry with all search providers
var SearchModule = fx.Module("search",
	fx.Provide(NewSearchRegistry),
)

// CollaboratorModule provides dictionary and video lookups
var CollaboratorModule = fx.Module("collaborators",
	fx.Provide(
		NewDictionaryClient,
		NewYouTubeClient,
	),
)

// CoreModule provides business logic cores
var CoreModule = fx.Module("core",
	fx.Provide(
		NewTracker,
		NewOrchestrator,
		core.NewLibrary,
		NewLearningCore,
		NewResearchService,
	),
)

// ChatModule provides the tutor agent
var ChatModule = fx.Module("chat",
	fx.Provide(NewTutor),
)

// NotificationModule provides sinks, the syncer and the reminder worker
var NotificationModule = fx.Module("notification",
	fx.Provide(
		NewFirebaseSender,
		NewSyncer,
		NewNotificationWorker,
	),
	fx.Invoke(InstallStoreHooks),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewLogger creates the application logger
func NewLogger(lc fx.Lifecycle, cfg config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}

// NewLocation resolves TIMEZONE; unknown zones fall back to UTC
func NewLocation(cfg config.Config, log *logger.Logger) *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn("[FX] Unknown TIMEZONE, using UTC", "timezone", cfg.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// StartTracing installs the tracer provider and flushes it on shutdown
func StartTracing(lc fx.Lifecycle, cfg config.Config, log *logger.Logger) error {
	shutdown, err := observability.InitTracing(cfg.Tracing, log)
	if err != nil {
		return err
	}
	lc.Append(fx.StopHook(shutdown))
	return nil
}

// NewBackend opens the storage backend selected by STORAGE_BACKEND
func NewBackend(cfg config.Config, log *logger.Logger) (store.Backend, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		b   store.Backend
		err error
	)
	switch cfg.StorageBackend {
	case "memory":
		b = store.NewMemoryBackend()
	case "sqlite":
		b, err = store.NewSQLiteBackend(cfg.SQLitePath)
	case "postgres":
		b, err = store.NewPostgresBackend(ctx, cfg.DatabaseURL)
	case "redis":
		b, err = store.NewRedisBackend(ctx, cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q (supported: sqlite, postgres, redis, memory)", cfg.StorageBackend)
	}
	if err != nil {
		return nil, err
	}
	log.Info("[FX] Storage backend initialized", "backend", b.Name())
	return b, nil
}

// NewStore wraps the backend and closes it on shutdown
func NewStore(lc fx.Lifecycle, b store.Backend, cfg config.Config, log *logger.Logger) *store.Store {
	st := store.New(b, cfg.StorageNamespace, log)
	lc.Append(fx.StopHook(st.Close))
	return st
}

func NewSettingsService(st *store.Store, log *logger.Logger) *settings.Service {
	return settings.NewService(context.Background(), st, log)
}

func NewScraper(cfg config.Config, log *logger.Logger) *scraper.Scraper {
	return scraper.NewScraper(scraper.Options{SupadataAPIKey: cfg.SupadataAPIKey}, log)
}

// NewGeminiClient creates the shared Gemini client (nil without GEMINI_API_KEY)
func NewGeminiClient(cfg config.Config, log *logger.Logger) (*genai.Client, error) {
	client, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	if client != nil {
		log.Info("[FX] Gemini client initialized", "model", cfg.GeminiTextModel)
	}
	return client, nil
}

func NewEngine(client *genai.Client, cfg config.Config, log *logger.Logger) ai.Engine {
	return ai.NewEngine(client, cfg, log)
}

func NewSpeaker(client *genai.Client, cfg config.Config, log *logger.Logger) *ai.Speaker {
	return ai.NewSpeaker(client, cfg.GeminiTTSModel, cfg.GeminiVoice, log)
}

// NewSearchRegistry creates search registry with all available providers
func NewSearchRegistry(cfg config.Config, log *logger.Logger) *search.Registry {
	registry := search.NewRegistry(log)

	if cfg.TavilyAPIKey != "" {
		registry.Register(tavily.NewClient(cfg.TavilyAPIKey, log))
		log.Info("[FX] SearchRegistry: Tavily registered")
	}

	if cfg.SerpAPIKey != "" {
		registry.Register(serpapi.NewClient(cfg.SerpAPIKey, log))
		log.Info("[FX] SearchRegistry: SerpApi registered")
	}

	log.Info("[FX] SearchRegistry initialized", "providers", registry.Count())
	return registry
}

func NewDictionaryClient(log *logger.Logger) *dictionary.Client {
	return dictionary.NewClient(log)
}

func NewYouTubeClient(cfg config.Config, log *logger.Logger) (*youtube.Client, error) {
	return youtube.NewClient(context.Background(), cfg.YouTubeAPIKey, log)
}

func NewTracker(st *store.Store, loc *time.Location, log *logger.Logger) *stats.Tracker {
	return stats.NewTracker(st, loc, log)
}

// NewOrchestrator wires link expansion only when EXPAND_LINKS is on
func NewOrchestrator(st *store.Store, engine ai.Engine, scr *scraper.Scraper, cfg config.Config, log *logger.Logger) *core.Orchestrator {
	var expander core.LinkExpander
	if cfg.ExpandLinks {
		expander = scr
	}
	return core.NewOrchestrator(st, engine, expander, log)
}

func NewLearningCore(st *store.Store, tracker *stats.Tracker, cfg config.Config, log *logger.Logger) *core.LearningCore {
	return core.NewLearningCore(st, tracker, cfg.CascadeDelete, log)
}

func NewResearchService(registry *search.Registry, engine ai.Engine, log *logger.Logger) *core.ResearchService {
	return core.NewResearchService(registry, engine, log)
}

// TutorParams groups dependencies for the tutor agent
type TutorParams struct {
	fx.In
	Client     *genai.Client
	Library    *core.Library
	Dictionary *dictionary.Client
	Videos     *youtube.Client
	Config     config.Config
	Logger     *logger.Logger
}

// NewTutor creates the chat tutor; without a Gemini client it is disabled
func NewTutor(p TutorParams) (*chat.Tutor, error) {
	if p.Client == nil {
		return chat.NewTutor(nil, nil, p.Logger)
	}
	llm, err := adkmodel.NewModel("gemini", p.Client, p.Config.GeminiChatModel, p.Logger)
	if err != nil {
		return nil, err
	}
	toolset, err := tools.All(p.Library, p.Dictionary, p.Videos)
	if err != nil {
		return nil, fmt.Errorf("failed to build tutor tools: %w", err)
	}
	p.Logger.Info("[FX] Tutor initialized", "model", llm.Name(), "tools", len(toolset))
	return chat.NewTutor(llm, toolset, p.Logger)
}

// NewFirebaseSender creates Firebase Cloud Messaging sender (optional)
func NewFirebaseSender(cfg config.Config, log *logger.Logger) *firebase.Sender {
	if _, err := os.Stat(cfg.FirebaseCredPath); err != nil {
		log.Info("[FX] FirebaseSender disabled", "path", cfg.FirebaseCredPath)
		return nil
	}

	sender, err := firebase.NewSender(context.Background(), cfg.FirebaseCredPath, log)
	if err != nil {
		log.Warn("[FX] FirebaseSender failed", "error", err)
		return nil
	}
	return sender
}

// SyncerParams groups the optional sink dependencies
type SyncerParams struct {
	fx.In
	Lifecycle fx.Lifecycle
	FCM       *firebase.Sender `optional:"true"`
	Backend   store.Backend
	Config    config.Config
	Logger    *logger.Logger
}

// NewSyncer builds one sink per configured destination. The Redis sink
// reuses the storage connection when Redis is also the backend.
func NewSyncer(p SyncerParams) *notifications.Syncer {
	var sinks []notifications.Sink
	if p.FCM != nil {
		sinks = append(sinks, notifications.NewFCMSink(p.FCM, p.Config.FCMTopic))
	}
	if p.Config.RedisSyncChannel != "" {
		var client goredis.UniversalClient
		if rb, ok := p.Backend.(*store.RedisBackend); ok {
			client = rb.Client()
		} else {
			c := goredis.NewClient(&goredis.Options{Addr: p.Config.RedisAddr})
			p.Lifecycle.Append(fx.StopHook(c.Close))
			client = c
		}
		sinks = append(sinks, notifications.NewRedisSink(client, p.Config.RedisSyncChannel))
	}

	syncer := notifications.NewSyncer(sinks, p.Logger)
	p.Logger.Info("[FX] Syncer initialized", "sinks", syncer.Sinks())
	return syncer
}

// NewNotificationWorker creates the reminder worker; it needs at least one sink
func NewNotificationWorker(st *store.Store, tracker *stats.Tracker, syncer *notifications.Syncer, loc *time.Location, cfg config.Config, log *logger.Logger) *notifications.Worker {
	if len(syncer.Sinks()) == 0 {
		log.Info("[FX] NotificationWorker disabled (no sinks)")
		return nil
	}
	return notifications.NewWorker(st, tracker, syncer, cfg.ReminderCron, loc, log)
}

// InstallStoreHooks routes task and stats writes to the syncer
func InstallStoreHooks(st *store.Store, syncer *notifications.Syncer) {
	if len(syncer.Sinks()) == 0 {
		return
	}
	st.SetHooks(syncer)
}
