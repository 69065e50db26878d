package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/amityadav/studybuddy/internal/ai"
	"github.com/amityadav/studybuddy/internal/logger"
	"github.com/amityadav/studybuddy/prompts"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/adk/tool"
	"google.golang.org/genai"
)

const (
	appName          = "StudyBuddyTutor"
	studentID        = "student"
	defaultSessionID = "default"
)

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrNoReply      = errors.New("chat: tutor returned no reply")
)

// Reply is the tutor's answer split into renderable blocks
type Reply struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

// Tutor answers questions about one material at a time. Conversations are
// kept in memory per (material, session) pair.
type Tutor struct {
	runner   *runner.Runner
	sessions session.Service
	log      *logger.Logger

	mu    sync.Mutex
	turns map[string]*sync.Mutex
}

// NewTutor builds the tutor agent over llm with the given tools. A nil llm
// yields a tutor whose Ask fails with ai.ErrMissingCredential.
func NewTutor(llm model.LLM, tools []tool.Tool, log *logger.Logger) (*Tutor, error) {
	if log == nil {
		log = logger.NewNop()
	}
	t := &Tutor{
		log:   log.With("component", "Tutor"),
		turns: map[string]*sync.Mutex{},
	}
	if llm == nil {
		t.log.Warn("[Tutor.New] No model configured, chat disabled")
		return t, nil
	}

	tutorAgent, err := llmagent.New(llmagent.Config{
		Name:        "study_tutor",
		Model:       llm,
		Description: "Answers student questions about a study material",
		Instruction: prompts.Tutor,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tutor agent: %w", err)
	}

	t.sessions = session.InMemoryService()
	t.runner, err = runner.New(runner.Config{
		AppName:        appName,
		Agent:          tutorAgent,
		SessionService: t.sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return t, nil
}

// Ask sends one student message and waits for the final answer. Turns on
// the same session are serialized.
func (t *Tutor) Ask(ctx context.Context, materialID, sessionID, message string) (Reply, error) {
	if t.runner == nil {
		return Reply{}, ai.ErrMissingCredential
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	key := materialID + "/" + sessionID

	turn := t.turnLock(key)
	turn.Lock()
	defer turn.Unlock()

	if err := t.ensureSession(ctx, key); err != nil {
		return Reply{}, err
	}

	input := &genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("material_id: %s\n\n%s", materialID, message)),
		},
	}

	t.log.Debug("[Tutor.Ask] Running turn", "session", key)
	var final string
	for event, err := range t.runner.Run(ctx, studentID, key, input, agent.RunConfig{}) {
		if err != nil {
			t.log.Error("[Tutor.Ask] Run failed", "session", key, "error", err)
			return Reply{}, fmt.Errorf("tutor run failed: %w", err)
		}
		if text := eventText(event); text != "" {
			final = text
		}
	}
	if final == "" {
		return Reply{}, ErrNoReply
	}
	return Reply{Text: final, Blocks: ParseBlocks(final)}, nil
}

func (t *Tutor) turnLock(key string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.turns[key]
	if !ok {
		m = &sync.Mutex{}
		t.turns[key] = m
	}
	return m
}

// ensureSession creates the session on its first turn. Callers hold the
// session's turn lock.
func (t *Tutor) ensureSession(ctx context.Context, key string) error {
	_, err := t.sessions.Get(ctx, &session.GetRequest{
		AppName:   appName,
		UserID:    studentID,
		SessionID: key,
	})
	if err == nil {
		return nil
	}
	_, err = t.sessions.Create(ctx, &session.CreateRequest{
		AppName:   appName,
		UserID:    studentID,
		SessionID: key,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// eventText joins the text parts of a model event
func eventText(event *session.Event) string {
	if event == nil || event.Content == nil || event.Content.Role == genai.RoleUser {
		return ""
	}
	var sb strings.Builder
	for _, p := range event.Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			sb.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
