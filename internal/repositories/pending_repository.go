package repositories

import (
	"fmt"
	"path/filepath"

	"goldantelope/internal/models"
)

// PendingRepository persists the per-country moderation queue as an
// ordered JSON array of pending listings.
type PendingRepository struct {
	DataDir string
}

func (r *PendingRepository) pendingFile(country models.Country) string {
	return filepath.Join(r.DataDir, fmt.Sprintf("pending_%s.json", country))
}

// Load returns the pending queue, oldest first. An absent file is an
// empty queue; an unreadable one is reported as models.ErrCorruptData.
func (r *PendingRepository) Load(country models.Country) ([]models.Listing, error) {
	var items []models.Listing
	if _, err := readJSONFile(r.pendingFile(country), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Listing{}
	}
	return items, nil
}

// Save replaces the pending queue.
func (r *PendingRepository) Save(country models.Country, items []models.Listing) error {
	if items == nil {
		items = []models.Listing{}
	}
	return writeJSONFile(r.pendingFile(country), items)
}
