package repositories

import (
	"path/filepath"

	"goldantelope/internal/models"
)

// BannerRepository persists the country -> ordered banner URL registry.
// Image bytes themselves live in object storage; this file only orders
// and lists them.
type BannerRepository struct {
	DataDir string
}

func (r *BannerRepository) bannerFile() string {
	return filepath.Join(r.DataDir, "banner_config.json")
}

// defaultBanners mirrors the static assets shipped with the frontend.
var defaultBanners = map[models.Country][]string{
	models.CountryVietnam: {
		"/static/images/banners/vietnam1.jpg",
		"/static/images/banners/vietnam2.jpg",
		"/static/images/banners/vietnam3.jpg",
		"/static/images/banners/vietnam4.jpg",
	},
	models.CountryThailand:  {"/static/images/banner_thailand.jpg"},
	models.CountryIndia:     {"/static/images/banner_india.jpg"},
	models.CountryIndonesia: {"/static/images/banner_indonesia.jpg"},
}

func (r *BannerRepository) Load() (map[models.Country][]string, error) {
	var config map[models.Country][]string
	absent, err := readJSONFile(r.bannerFile(), &config)
	if err != nil {
		return nil, err
	}
	if absent || config == nil {
		config = make(map[models.Country][]string, len(defaultBanners))
		for country, urls := range defaultBanners {
			config[country] = append([]string(nil), urls...)
		}
	}
	return config, nil
}

func (r *BannerRepository) Save(config map[models.Country][]string) error {
	return writeJSONFile(r.bannerFile(), config)
}
