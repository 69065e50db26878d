package main

import (
	"log"

	appfx "github.com/amityadav/studybuddy/internal/fx"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		appfx.ConfigModule,       // Provides: config.Config, *logger.Logger, *time.Location
		appfx.StoreModule,        // Provides: store.Backend, *store.Store
		appfx.SettingsModule,     // Provides: *settings.Service
		appfx.ScraperModule,      // Provides: *scraper.Scraper
		appfx.AIModule,           // Provides: *genai.Client, ai.Engine, *ai.Speaker
		appfx.SearchModule,       // Provides: *search.Registry
		appfx.CollaboratorModule, // Provides: *dictionary.Client, *youtube.Client
		appfx.CoreModule,         // Provides: *stats.Tracker, *core.Orchestrator, *core.Library, *core.LearningCore, *core.ResearchService
		appfx.ChatModule,         // Provides: *chat.Tutor
		appfx.NotificationModule, // Provides: *firebase.Sender, *notifications.Syncer, *notifications.Worker
		appfx.ServerModule,       // Starts the REST server and the reminder worker

		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap()}
		}),
	)

	// Run blocks until the app receives a shutdown signal
	app.Run()
}
