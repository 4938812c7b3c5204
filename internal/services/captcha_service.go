package services

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"goldantelope/internal/models"
	"goldantelope/utils"
)

const (
	captchaTTL = 10 * time.Minute
	captchaCap = 1000
)

// CaptchaService issues arithmetic challenges and validates their
// answers. Tokens live in process memory only and are consumed exactly
// once per submission attempt, match or not.
type CaptchaService struct {
	store *cache.Cache
}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{store: cache.New(captchaTTL, 5*time.Minute)}
}

// Issue creates a challenge and returns the question with its token.
func (s *CaptchaService) Issue() (question, token string) {
	if s.store.ItemCount() > captchaCap {
		s.store.DeleteExpired()
		if s.store.ItemCount() > captchaCap {
			// hard cap: drop everything rather than grow without bound
			s.store.Flush()
		}
	}
	question, answer := utils.CaptchaChallenge()
	token = utils.NewCaptchaToken()
	s.store.Set(token, answer, cache.DefaultExpiration)
	return question, token
}

// Consume invalidates the token and then checks the answer. A replayed,
// expired or unknown token always fails; so does a wrong answer, but the
// token is gone either way.
func (s *CaptchaService) Consume(token, answer string) error {
	if token == "" {
		return models.ErrCaptchaInvalid
	}
	expected, found := s.store.Get(token)
	s.store.Delete(token)
	if !found {
		return models.ErrCaptchaInvalid
	}
	if expected.(string) != strings.TrimSpace(answer) {
		return models.ErrCaptchaInvalid
	}
	return nil
}
