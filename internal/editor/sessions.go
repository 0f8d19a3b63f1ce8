package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retail-admin/backoffice/internal/models"
	"github.com/retail-admin/backoffice/internal/notify"
	"go.uber.org/zap"
)

// Session is the editor and toast queue of one admin.
type Session struct {
	Editor *Editor
	Toasts *notify.Queue

	lastUsed time.Time
}

type SessionsConfig struct {
	IdleTTL       time.Duration
	ToastDuration time.Duration
	// SinkFor, when set, builds the toast sink of a new session.
	SinkFor func(actor models.Actor) notify.Sink
}

type Sessions struct {
	store Store
	cfg   SessionsConfig
	log   *zap.Logger
	now   func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewSessions(store Store, cfg SessionsConfig, log *zap.Logger) *Sessions {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Sessions{
		store:    store,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Get returns the admin's session, creating it on first use.
func (s *Sessions) Get(actor models.Actor) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[actor.ID]
	if !ok {
		var sink notify.Sink
		if s.cfg.SinkFor != nil {
			sink = s.cfg.SinkFor(actor)
		}
		toasts := notify.NewQueue(s.cfg.ToastDuration, sink, s.log)
		sess = &Session{
			Editor: New(s.store, toasts, actor, s.log),
			Toasts: toasts,
		}
		s.sessions[actor.ID] = sess
		s.log.Info("editor session opened", zap.String("actor", actor.Login))
	}
	sess.lastUsed = s.now()
	return sess
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// EvictIdle closes sessions unused for longer than the idle TTL. A session
// whose editor still has a store call in flight is kept until the next sweep.
func (s *Sessions) EvictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.IdleTTL)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Before(cutoff) && !sess.Editor.Busy() {
			sess.Toasts.Close()
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Start runs the idle-session janitor until ctx is done.
func (s *Sessions) Start(ctx context.Context) {
	interval := s.cfg.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.EvictIdle(); n > 0 {
					s.log.Info("idle editor sessions evicted", zap.Int("count", n))
				}
			}
		}
	}()
}
