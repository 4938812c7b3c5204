package services

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const presenceWindow = 60 * time.Second

// PresenceService tracks visitor heartbeats in process memory. A visitor
// counts as online while its last heartbeat is within the window; the
// published figure carries a fixed baseline offset on top of the live
// session count.
type PresenceService struct {
	sessions *cache.Cache
	baseline int
}

func NewPresenceService(baseline int) *PresenceService {
	return &PresenceService{
		sessions: cache.New(presenceWindow, 2*time.Minute),
		baseline: baseline,
	}
}

// Ping records a heartbeat for the visitor key and returns the current
// online figure.
func (s *PresenceService) Ping(key string) int {
	s.sessions.Set(key, time.Now().Unix(), cache.DefaultExpiration)
	return s.Count()
}

// Count returns live sessions plus the baseline offset.
func (s *PresenceService) Count() int {
	return len(s.sessions.Items()) + s.baseline
}
