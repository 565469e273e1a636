// Package session keeps per-visitor tool state in memory.
//
// Each Session owns one markdown buffer and one merge session. Sessions are
// keyed by a random UUID carried in a cookie and evicted after an idle TTL
// by a background sweeper started with Store.Run.
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-toolbox"
)

// Session is one visitor's workspace. The merge state is guarded by its
// MergeSession; the markdown buffer by mu.
type Session struct {
	id    string
	merge *toolbox.MergeSession

	mu       sync.Mutex
	markdown toolbox.MarkdownBuffer
	lastSeen time.Time
}

// ID returns the session key.
func (s *Session) ID() string { return s.id }

// Merge returns the session's PDF merge state.
func (s *Session) Merge() *toolbox.MergeSession { return s.merge }

// Markdown returns the current buffer.
func (s *Session) Markdown() toolbox.MarkdownBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown
}

// EditMarkdown replaces the buffer text and returns the new buffer.
func (s *Session) EditMarkdown(text string) toolbox.MarkdownBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markdown = s.markdown.Edit(text)
	return s.markdown
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Store is an in-memory session table. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl             time.Duration
	merger          *toolbox.PDFMerger
	initialMarkdown string
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMerger sets the PDFMerger shared by every session's MergeSession.
func WithMerger(m *toolbox.PDFMerger) Option {
	return func(s *Store) { s.merger = m }
}

// WithInitialMarkdown seeds new sessions' buffers.
func WithInitialMarkdown(text string) Option {
	return func(s *Store) { s.initialMarkdown = text }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for evictions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a Store that evicts sessions idle longer than ttl.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		sessions:        make(map[string]*Session),
		ttl:             ttl,
		initialMarkdown: toolbox.DefaultMarkdown,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.merger == nil {
		s.merger = toolbox.NewPDFMerger()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Get returns the live session for id and marks it as used.
// Malformed and unknown ids report false.
func (s *Store) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	now := s.now()
	if sess.idleSince(now) > s.ttl {
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Create starts a new session with a fresh random id.
func (s *Store) Create() *Session {
	sess := &Session{
		id:       uuid.NewString(),
		merge:    toolbox.NewMergeSession(s.merger),
		markdown: toolbox.NewMarkdownBuffer(s.initialMarkdown),
		lastSeen: s.now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// GetOrCreate returns the session for id, or a new one when id is not live.
// created reports whether a new session was made.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Len returns the number of stored sessions, including idle ones not yet swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep evicts every session idle longer than the TTL and returns how many
// were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Debug("sessions evicted", "count", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

// Run sweeps every interval until ctx is done. It always returns nil so it
// can run directly in an errgroup.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
