package repositories

import (
	"fmt"
	"path/filepath"

	"goldantelope/internal/models"
)

// ChannelsRepository persists the per-country registry of source
// channels feeding the manual import workflow, keyed by category.
type ChannelsRepository struct {
	DataDir string
}

type channelsDocument struct {
	Channels map[string][]string `json:"channels"`
}

func (r *ChannelsRepository) channelsFile(country models.Country) string {
	return filepath.Join(r.DataDir, fmt.Sprintf("%s_channels.json", country))
}

func (r *ChannelsRepository) Load(country models.Country) (map[string][]string, error) {
	var doc channelsDocument
	if _, err := readJSONFile(r.channelsFile(country), &doc); err != nil {
		return nil, err
	}
	if doc.Channels == nil {
		doc.Channels = map[string][]string{}
	}
	return doc.Channels, nil
}

func (r *ChannelsRepository) Save(country models.Country, channels map[string][]string) error {
	return writeJSONFile(r.channelsFile(country), channelsDocument{Channels: channels})
}
