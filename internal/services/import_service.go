package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
)

// ImportService ingests batches of channel messages into a catalog
// category. Messages already imported are recognized by their source
// link and skipped, so replaying a batch is safe.
type ImportService struct {
	CatalogRepo *repositories.CatalogRepository
	Relay       PhotoRelay
	InfoLog     *log.Logger
	ErrorLog    *log.Logger
}

// ImportResult reports what one batch did.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Log      []string `json:"log"`
}

// Import converts channel messages into listings at the head of the
// category and saves the catalog once at the end.
func (s *ImportService) Import(ctx context.Context, country models.Country, category models.Category, channel string, messages []models.ChannelMessage) (ImportResult, error) {
	catalog, err := s.CatalogRepo.Load(country)
	if err != nil {
		return ImportResult{}, err
	}

	channel = strings.TrimPrefix(strings.TrimSpace(channel), "@")
	seen := make(map[string]bool, len(catalog[category]))
	for _, item := range catalog[category] {
		if item.TelegramLink != "" {
			seen[item.TelegramLink] = true
		}
	}

	var result ImportResult
	now := time.Now()
	for _, msg := range messages {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			result.Skipped++
			continue
		}

		link := fmt.Sprintf("https://t.me/%s/%d", channel, msg.ID)
		if seen[link] {
			result.Skipped++
			result.Log = append(result.Log, fmt.Sprintf("skip %s: already imported", link))
			continue
		}

		listing := models.Listing{
			ID:           fmt.Sprintf("%s_%s_%d_%d", country, category, now.Unix(), result.Imported),
			Title:        firstLine(text, 100),
			Description:  text,
			Category:     category,
			TelegramLink: link,
			Date:         msg.Date,
			AddedAt:      now.Format(time.RFC3339),
		}
		if listing.Date == "" {
			listing.Date = now.Format("2006-01-02")
		}

		s.importPhoto(ctx, &listing, msg)

		catalog[category] = append([]models.Listing{listing}, catalog[category]...)
		seen[link] = true
		result.Imported++
		result.Log = append(result.Log, fmt.Sprintf("imported %s as %s", link, listing.ID))
	}

	if result.Imported == 0 {
		return result, nil
	}
	if err := s.CatalogRepo.Save(country, catalog); err != nil {
		return ImportResult{}, err
	}
	s.InfoLog.Printf("import %s/%s from @%s: %d imported, %d skipped", country, category, channel, result.Imported, result.Skipped)
	return result, nil
}

// importPhoto pushes the message photo through the relay for a durable
// handle. Failures are absorbed; the listing imports without a photo.
func (s *ImportService) importPhoto(ctx context.Context, listing *models.Listing, msg models.ChannelMessage) {
	if s.Relay == nil {
		return
	}

	data := msg.PhotoData
	if data == nil && msg.PhotoURL != "" {
		fetched, err := s.Relay.FetchImage(ctx, msg.PhotoURL)
		if err != nil {
			s.ErrorLog.Printf("import photo %s: fetch: %v", listing.TelegramLink, err)
			return
		}
		data = fetched
	}
	if data == nil {
		return
	}

	fileID, err := s.Relay.StorePhoto(ctx, data, listing.Title)
	if err != nil {
		s.ErrorLog.Printf("import photo %s: store: %v", listing.TelegramLink, err)
		return
	}
	listing.TelegramFileID = fileID
	listing.TelegramPhoto = true
	if url, err := s.Relay.PhotoURL(ctx, fileID); err == nil {
		listing.ImageURL = url
	}
}

// firstLine returns the first line of text truncated to max runes.
func firstLine(text string, max int) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return string(runes)
}
