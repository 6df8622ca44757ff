package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/pkg"

	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL   = 30 * time.Minute
	CookieName   = "fitmentor_session"
	sessionIDLen = 32
)

var ErrSessionNotFound = errors.New("session not found")

// Store keeps sessions in memory. A session expires after ttl without being
// used, nothing outlives the process.
type Store struct {
	cache          *gocache.Cache
	ttl            time.Duration
	opts           Options
	metricsManager *metrics.Manager
}

func NewStore(ttl time.Duration, opts Options, metricsManager *metrics.Manager) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cache := gocache.New(ttl, ttl/2)
	if metricsManager != nil {
		cache.OnEvicted(func(id string, _ any) {
			metricsManager.GaugeActiveSessions.Dec()
			log.Tracef("session %s evicted", id)
		})
	}

	return &Store{
		cache:          cache,
		ttl:            ttl,
		opts:           opts,
		metricsManager: metricsManager,
	}
}

func (st *Store) Create() (*Session, error) {
	id, err := pkg.GenerateRandomString(sessionIDLen)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s, err := New(id, st.opts)
	if err != nil {
		return nil, err
	}

	if err := st.cache.Add(id, s, st.ttl); err != nil {
		return nil, fmt.Errorf("add session: %w", err)
	}
	if st.metricsManager != nil {
		st.metricsManager.GaugeActiveSessions.Inc()
	}
	log.Debugf("new session %s", id)

	return s, nil
}

// Get returns the session and extends its lifetime.
func (st *Store) Get(id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	item, found := st.cache.Get(id)
	if !found {
		return nil, ErrSessionNotFound
	}
	s, ok := item.(*Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", item)
	}
	st.cache.Set(id, s, st.ttl)
	return s, nil
}

// GetOrCreate returns the session with id, or a new one when it does not
// exist (anymore). The bool reports whether a session was created.
func (st *Store) GetOrCreate(id string) (*Session, bool, error) {
	s, err := st.Get(id)
	if err == nil {
		return s, false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, false, err
	}
	s, err = st.Create()
	return s, true, err
}

func (st *Store) Delete(id string) {
	st.cache.Delete(id)
}

// Broadcast adds the notice to every live session.
func (st *Store) Broadcast(notice orchestrator.Notice) {
	for _, item := range st.cache.Items() {
		if s, ok := item.Object.(*Session); ok {
			s.Notify(notice)
		}
	}
}

func (st *Store) Count() int {
	return st.cache.ItemCount()
}
