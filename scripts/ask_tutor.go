package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/amityadav/studybuddy/internal/adk/tools"
	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/chat"
	"github.com/amityadav/studybuddy/internal/config"
	"github.com/amityadav/studybuddy/internal/core"
	"github.com/amityadav/studybuddy/internal/dictionary"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/internal/store"
	"github.com/amityadav/studybuddy/internal/youtube"
	adkmodel "github.com/amityadav/studybuddy/pkg/adk/model"
	"github.com/joho/godotenv"
)

// Asks the tutor one question about a stored material against the real
// Gemini API and the local SQLite database.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found")
	}
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run scripts/ask_tutor.go <material_id> <question>")
	}
	materialID := os.Args[1]
	question := strings.Join(os.Args[2:], " ")

	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}
	lg, err := logger.New("dev")
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	backend, err := store.NewSQLiteBackend(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", cfg.SQLitePath, err)
	}
	st := store.New(backend, cfg.StorageNamespace, lg)
	defer st.Close()

	client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal(err)
	}
	llm, err := adkmodel.NewModel("gemini", client, cfg.GeminiChatModel, lg)
	if err != nil {
		log.Fatal(err)
	}
	videos, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey, lg)
	if err != nil {
		log.Fatal(err)
	}
	toolset, err := tools.All(core.NewLibrary(st), dictionary.NewClient(lg), videos)
	if err != nil {
		log.Fatal(err)
	}
	tutor, err := chat.NewTutor(llm, toolset, lg)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	reply, err := tutor.Ask(ctx, materialID, "script", question)
	if err != nil {
		log.Fatalf("Ask failed: %v", err)
	}

	fmt.Printf("\n--- Reply (%s) ---\n%s\n\n", time.Since(start).Round(time.Millisecond), reply.Text)
	for i, b := range reply.Blocks {
		fmt.Printf("block %d: %s\n", i, b.Kind)
	}
}
