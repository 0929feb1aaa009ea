package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/dashboard"
	"weather-dashboard/internal/services/search"
	"weather-dashboard/pkg/logger"
)

// Session is the per-browser state: one dashboard and one search box.
type Session struct {
	ID        string
	Dashboard *dashboard.Dashboard
	Searcher  *search.Searcher

	lastSeen time.Time
}

type Options struct {
	CountryIDs string
	Debounce   time.Duration
}

// Manager keeps sessions in memory. Nothing survives a restart.
type Manager struct {
	fetcher dashboard.WeatherFetcher
	cities  repositories.CityRepository
	opts    Options
	l       *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(fetcher dashboard.WeatherFetcher, cities repositories.CityRepository, opts Options, l *logger.Logger) *Manager {
	return &Manager{
		fetcher:  fetcher,
		cities:   cities,
		opts:     opts,
		l:        l,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// The returned session's ID is the one to hand back to the client.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = time.Now()
		return s
	}

	s := &Session{
		ID:        uuid.NewString(),
		Dashboard: dashboard.New(m.fetcher, m.l),
		Searcher:  search.NewSearcher(m.cities, m.opts.CountryIDs, m.opts.Debounce, m.l),
		lastSeen:  time.Now(),
	}
	m.sessions[s.ID] = s

	m.l.Debug("session created", map[string]any{"session": s.ID})

	return s
}

// Sweep drops sessions idle for longer than maxIdle and stops their pending
// searches. It returns the number of sessions removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	for _, s := range expired {
		s.Searcher.Close()
	}

	if len(expired) > 0 {
		m.l.Info("swept idle sessions", map[string]any{
			"removed":   len(expired),
			"remaining": remaining,
		})
	}

	return len(expired)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close tears down every session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Searcher.Close()
	}
}
