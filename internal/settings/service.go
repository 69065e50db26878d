package settings

import (
	"context"
	"sync"

	"github.com/amityadav/studybuddy/internal/domain"
	"github.com/amityadav/studybuddy/internal/logger"
)

// Store defines the interface for settings persistence
type Store interface {
	Settings(ctx context.Context) domain.AppSettings
	SaveSettings(ctx context.Context, s domain.AppSettings) error
}

// Service provides access to the app settings with in-memory caching
type Service struct {
	store    Store
	log      *logger.Logger
	mu       sync.RWMutex
	settings domain.AppSettings
}

// NewService creates a new settings service and loads the stored settings
func NewService(ctx context.Context, store Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Service{
		store:    store,
		log:      log.With("component", "Settings"),
		settings: domain.DefaultSettings(),
	}
	s.Refresh(ctx)
	return s
}

// Get returns the cached settings
func (s *Service) Get() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update persists next and caches it once the write succeeded
func (s *Service) Update(ctx context.Context, next domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.SaveSettings(ctx, next); err != nil {
		return err
	}
	s.settings = next
	s.log.Info("[Settings.Update] Saved settings", "showSnow", next.ShowSnow)
	return nil
}

// Refresh reloads the settings from the store. Missing or unreadable
// settings fall back to defaults inside the store.
func (s *Service) Refresh(ctx context.Context) {
	loaded := s.store.Settings(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = loaded
	s.log.Debug("[Settings.Refresh] Loaded settings", "showSnow", loaded.ShowSnow)
}
