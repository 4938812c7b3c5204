package services

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"goldantelope/internal/models"
	"goldantelope/internal/repositories"
	"goldantelope/utils"
)

// BannerService manages the per-country rotation of promo banners. The
// registry file orders the URLs; the bytes go to object storage when it
// is configured.
type BannerService struct {
	BannerRepo *repositories.BannerRepository
	Storage    *utils.BannerStorage
	ErrorLog   *log.Logger
}

// List returns the banner registry for all countries.
func (s *BannerService) List() (map[models.Country][]string, error) {
	return s.BannerRepo.Load()
}

// Country returns the banner list for one country.
func (s *BannerService) Country(country models.Country) ([]string, error) {
	config, err := s.BannerRepo.Load()
	if err != nil {
		return nil, err
	}
	return config[country], nil
}

// Upload stores a new banner image and appends its URL to the country's
// rotation. Without object storage the URL points at the static assets
// path and the caller is expected to place the file there.
func (s *BannerService) Upload(country models.Country, filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%d_%s", country, time.Now().Unix(), sanitizeFilename(filename))

	url := "/static/images/banners/" + name
	if s.Storage != nil {
		stored, err := s.Storage.Upload(data, name, "banners")
		if err != nil {
			return "", err
		}
		url = stored
	}

	config, err := s.BannerRepo.Load()
	if err != nil {
		return "", err
	}
	config[country] = append(config[country], url)
	if err := s.BannerRepo.Save(config); err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes a banner URL from the country's rotation. The stored
// object is kept; only the registry entry goes.
func (s *BannerService) Delete(country models.Country, url string) error {
	config, err := s.BannerRepo.Load()
	if err != nil {
		return err
	}

	list := config[country]
	for i, existing := range list {
		if existing == url {
			config[country] = append(list[:i], list[i+1:]...)
			return s.BannerRepo.Save(config)
		}
	}
	return models.ErrBannerNotFound
}

// Reorder replaces the country's banner list with the given order.
func (s *BannerService) Reorder(country models.Country, urls []string) error {
	config, err := s.BannerRepo.Load()
	if err != nil {
		return err
	}
	if _, ok := config[country]; !ok {
		return models.ErrBannerNotFound
	}
	config[country] = urls
	return s.BannerRepo.Save(config)
}

// sanitizeFilename strips path components and anything that should not
// end up in a URL.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "banner.jpg"
	}
	return b.String()
}
