package services

import (
	"strings"

	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
)

// ChannelService manages the registry of source channels per country
// and category.
type ChannelService struct {
	ChannelsRepo *repositories.ChannelsRepository
}

// List returns the channel registry for a country.
func (s *ChannelService) List(country models.Country) (map[string][]string, error) {
	return s.ChannelsRepo.Load(country)
}

// Add registers a channel under a category. Duplicates within the same
// category are rejected.
func (s *ChannelService) Add(country models.Country, category models.Category, channel string) error {
	channel = strings.TrimPrefix(strings.TrimSpace(channel), "@")
	if channel == "" {
		return models.ErrValidation
	}

	channels, err := s.ChannelsRepo.Load(country)
	if err != nil {
		return err
	}
	for _, existing := range channels[string(category)] {
		if existing == channel {
			return models.ErrDuplicate
		}
	}
	channels[string(category)] = append(channels[string(category)], channel)
	return s.ChannelsRepo.Save(country, channels)
}

// Remove drops a channel from a category.
func (s *ChannelService) Remove(country models.Country, category models.Category, channel string) error {
	channel = strings.TrimPrefix(strings.TrimSpace(channel), "@")

	channels, err := s.ChannelsRepo.Load(country)
	if err != nil {
		return err
	}
	list := channels[string(category)]
	for i, existing := range list {
		if existing == channel {
			channels[string(category)] = append(list[:i], list[i+1:]...)
			return s.ChannelsRepo.Save(country, channels)
		}
	}
	return models.ErrChannelNotFound
}
