// Package inmem provides an in-memory record store with an optional JSON
// snapshot file. It implements the same repository interfaces as the
// gorm/Postgres medium, and it backs the test suite.
package inmem

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	eventModel "campushub_backend/internals/features/events/model"
	faqModel "campushub_backend/internals/features/home/faqs/model"
	notificationModel "campushub_backend/internals/features/home/notifications/model"
	authModel "campushub_backend/internals/features/users/auth/model"
	userModel "campushub_backend/internals/features/users/user/model"
)

// snapshot is the on-disk layout: one key per entity collection.
type snapshot struct {
	Users         []userModel.UserModel                 `json:"users"`
	Events        []eventModel.EventModel               `json:"events"`
	Registrations []eventModel.EventRegistrationModel   `json:"registrations"`
	Faqs          []faqModel.FaqModel                    `json:"faqs"`
	Notifications []notificationModel.NotificationModel `json:"notifications"`
}

type Store struct {
	mu   sync.RWMutex
	path string

	users         []userModel.UserModel
	events        []eventModel.EventModel
	registrations []eventModel.EventRegistrationModel
	faqs          []faqModel.FaqModel
	notifications []notificationModel.NotificationModel

	// Session tokens are not part of the snapshot; they live only as long
	// as the process.
	refreshTokens []authModel.RefreshToken
	blacklist     []authModel.TokenBlacklist
}

// Open loads the snapshot at path. A missing or malformed snapshot yields an
// empty store, never an error. An empty path keeps the store memory-only.
func Open(path string) *Store {
	s := &Store{path: path}
	if path == "" {
		return s
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[INFO] inmem: no snapshot at %s, starting empty", path)
		return s
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Printf("[WARN] inmem: malformed snapshot at %s, starting empty: %v", path, err)
		return s
	}

	s.users = snap.Users
	s.events = snap.Events
	s.registrations = snap.Registrations
	s.faqs = snap.Faqs
	s.notifications = snap.Notifications
	return s
}

// Flush serializes every collection to the snapshot file.
func (s *Store) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flushLocked()
}

// flushLocked must be called with at least a read lock held. Each mutation
// rewrites the whole snapshot; there is no incremental update.
func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}
	snap := snapshot{
		Users:         s.users,
		Events:        s.events,
		Registrations: s.registrations,
		Faqs:          s.faqs,
		Notifications: s.notifications,
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// persist flushes after a mutation; a failed flush is logged, not fatal.
func (s *Store) persist() {
	if err := s.flushLocked(); err != nil {
		log.Printf("[ERROR] inmem: snapshot flush failed: %v", err)
	}
}
