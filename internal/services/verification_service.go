package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"

	"goldantelope/internal/models"
	"goldantelope/utils"
)

const (
	codeTTL    = 10 * time.Minute
	sessionTTL = 24 * time.Hour
)

// CodeSender is the slice of the relay client the verification flow
// needs: discovering chat ids for usernames and delivering messages.
type CodeSender interface {
	KnownChats(ctx context.Context) (map[string]string, error)
	SendMessage(ctx context.Context, chatID, text string) error
}

type codeEntry struct {
	Code    string
	Expires time.Time
}

// VerificationService confirms that a visitor controls a Telegram
// account by sending a short-lived numeric code to it and checking the
// answer. Username to chat id mappings are cached because the relay can
// only see users who have recently messaged the bot.
type VerificationService struct {
	Relay   CodeSender
	codes   *cache.Cache
	session *cache.Cache
	chatIDs *lru.Cache[string, string]
}

func NewVerificationService(relay CodeSender) *VerificationService {
	chatIDs, _ := lru.New[string, string](128)
	return &VerificationService{
		Relay:   relay,
		codes:   cache.New(time.Hour, 10*time.Minute),
		session: cache.New(sessionTTL, time.Hour),
		chatIDs: chatIDs,
	}
}

func normalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "@"))
}

// RequestCode generates a six digit code for the username and delivers
// it over Telegram. The user must have messaged the bot at least once;
// otherwise there is no chat id to deliver to.
func (s *VerificationService) RequestCode(ctx context.Context, username string) error {
	username = normalizeUsername(username)
	if username == "" {
		return models.ErrChatIDUnknown
	}

	chatID, ok := s.chatIDs.Get(username)
	if !ok {
		chats, err := s.Relay.KnownChats(ctx)
		if err != nil {
			return err
		}
		for name, id := range chats {
			s.chatIDs.Add(name, id)
		}
		chatID, ok = s.chatIDs.Get(username)
		if !ok {
			return models.ErrChatIDUnknown
		}
	}

	code := utils.NumericCode(6)
	s.codes.Set(username, codeEntry{Code: code, Expires: time.Now().Add(codeTTL)}, cache.DefaultExpiration)

	text := fmt.Sprintf("🔐 Ваш код подтверждения: <b>%s</b>\n\nКод действует 10 минут.", code)
	return s.Relay.SendMessage(ctx, chatID, text)
}

// VerifyCode checks the code for the username. A match consumes the
// code and mints a session token; an expired code is dropped; a
// mismatch leaves the code in place for another try.
func (s *VerificationService) VerifyCode(username, code string) (string, error) {
	username = normalizeUsername(username)

	raw, found := s.codes.Get(username)
	if !found {
		return "", models.ErrCodeNotRequested
	}
	entry := raw.(codeEntry)
	if time.Now().After(entry.Expires) {
		s.codes.Delete(username)
		return "", models.ErrCodeExpired
	}
	if strings.TrimSpace(code) != entry.Code {
		return "", models.ErrCodeMismatch
	}

	s.codes.Delete(username)
	token := utils.NewSessionToken()
	s.session.Set(token, username, cache.DefaultExpiration)
	return token, nil
}

// SessionUser resolves a session token back to its verified username.
func (s *VerificationService) SessionUser(token string) (string, bool) {
	raw, found := s.session.Get(token)
	if !found {
		return "", false
	}
	return raw.(string), true
}
