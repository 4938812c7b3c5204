package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"goldantelope/internal/fsm"
	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
)

// maxPhotoBytes caps a single submitted photo. Larger uploads are
// rejected before anything is persisted.
const maxPhotoBytes = 1 << 20

// PhotoRelay is the slice of the relay client moderation needs:
// persisting photo bytes as durable handles, resolving handles back to
// URLs, fetching remote images, and notifying the moderation chat.
type PhotoRelay interface {
	StorePhoto(ctx context.Context, data []byte, caption string) (string, error)
	PhotoURL(ctx context.Context, fileID string) (string, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
	SendMessage(ctx context.Context, chatID, text string) error
}

// ModerationService owns the submission queue: intake, approval into
// the public catalog, and rejection.
type ModerationService struct {
	PendingRepo  *repositories.PendingRepository
	CatalogRepo  *repositories.CatalogRepository
	Captcha      *CaptchaService
	Relay        PhotoRelay
	Validate     *validator.Validate
	NotifyChatID string
	StaticDir    string
	InfoLog      *log.Logger
	ErrorLog     *log.Logger
}

// Submit validates a public submission and appends it to the country's
// pending queue. The captcha token is consumed before anything else
// happens, so a failed validation still burns the token.
func (s *ModerationService) Submit(ctx context.Context, country models.Country, captchaToken, captchaAnswer string, sub models.Submission, photos []models.PhotoUpload) (string, error) {
	if err := s.Captcha.Consume(captchaToken, captchaAnswer); err != nil {
		return "", err
	}
	if err := s.Validate.Struct(sub); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	for _, photo := range photos {
		if len(photo.Data) > maxPhotoBytes {
			return "", models.ErrPhotoTooLarge
		}
	}

	pending, err := s.PendingRepo.Load(country)
	if err != nil {
		return "", err
	}

	now := time.Now()
	listing := sub.Listing()
	listing.ID = fmt.Sprintf("pending_%s_%s_%d_%d", sub.Category(), country, now.Unix(), len(pending))
	listing.Category = sub.Category()
	listing.Status = fsm.StatusPending
	listing.Date = now.Format("2006-01-02 15:04")
	listing.AddedAt = now.Format(time.RFC3339)

	for i, photo := range photos {
		url := photoDataURL(photo)
		if i == 0 {
			listing.ImageURL = url
		}
		listing.AllImages = append(listing.AllImages, url)
	}

	pending = append(pending, listing)
	if err := s.PendingRepo.Save(country, pending); err != nil {
		return "", err
	}

	s.notify(ctx, fmt.Sprintf("📋 Новая заявка (%s / %s)\n\n%s\n\nID: %s", country, sub.Category(), listing.Title, listing.ID))
	return listing.ID, nil
}

// Pending lists the moderation queue for a country.
func (s *ModerationService) Pending(country models.Country) ([]models.Listing, error) {
	return s.PendingRepo.Load(country)
}

// Approve removes a submission from the queue and publishes it at the
// head of its catalog category under a fresh public id. The submission
// leaves the queue whatever happens afterwards, so a replayed approval
// reports not found. A relay outage does not block publication; the
// listing just goes out without a durable photo handle.
func (s *ModerationService) Approve(ctx context.Context, country models.Country, id string) (models.Listing, error) {
	item, err := s.takePending(country, id)
	if err != nil {
		return models.Listing{}, err
	}
	if _, err := fsm.Step(item.Status, fsm.StatusApproved); err != nil {
		return models.Listing{}, fmt.Errorf("%w: %s", models.ErrValidation, err)
	}

	category := models.LegacyCategory(string(item.Category))
	if item.Category == "" {
		category = models.CategoryRealEstate
	}

	item.ID = fmt.Sprintf("%s_%s_%d", country, category, time.Now().Unix())
	item.Category = category
	item.Status = fsm.StatusApproved

	s.relayPhoto(ctx, &item)

	catalog, err := s.CatalogRepo.Load(country)
	if err != nil {
		return models.Listing{}, err
	}
	catalog[category] = append([]models.Listing{item}, catalog[category]...)
	if err := s.CatalogRepo.Save(country, catalog); err != nil {
		return models.Listing{}, err
	}

	s.notify(ctx, fmt.Sprintf("✅ Заявка одобрена: %s (%s)", item.Title, item.ID))
	return item, nil
}

// Reject removes a submission from the queue without publishing it.
func (s *ModerationService) Reject(ctx context.Context, country models.Country, id string) error {
	item, err := s.takePending(country, id)
	if err != nil {
		return err
	}
	if _, err := fsm.Step(item.Status, fsm.StatusRejected); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, err)
	}
	s.notify(ctx, fmt.Sprintf("❌ Заявка отклонена: %s (%s)", item.Title, id))
	return nil
}

// takePending pops a submission out of the queue and persists the
// shrunk queue immediately.
func (s *ModerationService) takePending(country models.Country, id string) (models.Listing, error) {
	pending, err := s.PendingRepo.Load(country)
	if err != nil {
		return models.Listing{}, err
	}

	idx := -1
	for i, item := range pending {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Listing{}, models.ErrListingNotFound
	}

	item := pending[idx]
	pending = append(pending[:idx], pending[idx+1:]...)
	if err := s.PendingRepo.Save(country, pending); err != nil {
		return models.Listing{}, err
	}
	if item.Status == "" {
		item.Status = fsm.StatusPending
	}
	return item, nil
}

// relayPhoto exchanges the submission's inline or remote image for a
// durable relay handle. Every failure is absorbed: the listing is
// published either way.
func (s *ModerationService) relayPhoto(ctx context.Context, item *models.Listing) {
	if s.Relay == nil || item.ImageURL == "" {
		return
	}

	var data []byte
	switch {
	case strings.HasPrefix(item.ImageURL, "data:"):
		decoded, ok := decodeDataURL(item.ImageURL)
		if !ok {
			s.ErrorLog.Printf("photo relay %s: malformed data url", item.ID)
			return
		}
		data = decoded
	case strings.HasPrefix(item.ImageURL, "http://"), strings.HasPrefix(item.ImageURL, "https://"):
		fetched, err := s.Relay.FetchImage(ctx, item.ImageURL)
		if err != nil {
			s.ErrorLog.Printf("photo relay %s: fetch: %v", item.ID, err)
			return
		}
		data = fetched
	case strings.HasPrefix(item.ImageURL, "/static/") && s.StaticDir != "":
		read, err := os.ReadFile(filepath.Join(s.StaticDir, strings.TrimPrefix(item.ImageURL, "/static/")))
		if err != nil {
			s.ErrorLog.Printf("photo relay %s: read: %v", item.ID, err)
			return
		}
		data = read
	default:
		return
	}

	fileID, err := s.Relay.StorePhoto(ctx, data, item.Title)
	if err != nil {
		s.ErrorLog.Printf("photo relay %s: store: %v", item.ID, err)
		return
	}
	item.TelegramFileID = fileID
	item.TelegramPhoto = true

	if url, err := s.Relay.PhotoURL(ctx, fileID); err == nil {
		item.ImageURL = url
	}
}

func (s *ModerationService) notify(ctx context.Context, text string) {
	if s.Relay == nil || s.NotifyChatID == "" {
		return
	}
	if err := s.Relay.SendMessage(ctx, s.NotifyChatID, text); err != nil {
		if !errors.Is(err, models.ErrRelayUnavailable) {
			s.ErrorLog.Printf("moderation notify: %v", err)
		}
	}
}

// photoDataURL encodes an uploaded photo as an inline data URL so the
// pending queue stays self-contained in one JSON file.
func photoDataURL(photo models.PhotoUpload) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(photo.Filename)), ".")
	if ext == "" || ext == "jpg" {
		ext = "jpeg"
	}
	return "data:image/" + ext + ";base64," + base64.StdEncoding.EncodeToString(photo.Data)
}

func decodeDataURL(s string) ([]byte, bool) {
	idx := strings.Index(s, "base64,")
	if idx < 0 {
		return nil, false
	}
	data, err := base64.StdEncoding.DecodeString(s[idx+len("base64,"):])
	if err != nil {
		return nil, false
	}
	return data, true
}
