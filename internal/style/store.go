package style

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrsheet/internal/qr"
)

// Store keeps sessions in memory. Entries expire after ttl without access.
type Store struct {
	cache     *cache.Cache
	defaults  State
	newCanvas func() *qr.Canvas
	logger    *logrus.Logger
}

// NewStore creates a session store. newCanvas is called once per session.
func NewStore(ttl time.Duration, defaults State, newCanvas func() *qr.Canvas, logger *logrus.Logger) *Store {
	return &Store{
		cache:     cache.New(ttl, ttl/2),
		defaults:  defaults,
		newCanvas: newCanvas,
		logger:    logger,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session_%s", id)
}

// Get returns the session with id and refreshes its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	data, found := s.cache.Get(sessionKey(id))
	if !found {
		return nil, false
	}
	sess, ok := data.(*Session)
	if !ok {
		s.logger.Warnf("Invalid session type for %s", id)
		return nil, false
	}
	s.cache.Set(sessionKey(id), sess, cache.DefaultExpiration)
	return sess, true
}

// Create starts a session with the default state.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.defaults, s.newCanvas())
	s.cache.Set(sessionKey(sess.ID), sess, cache.DefaultExpiration)
	s.logger.Debugf("Created session %s", sess.ID)
	return sess
}

// GetOrCreate returns the session with id, or a new one when id is unknown
// or expired. created reports which happened.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
