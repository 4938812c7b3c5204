package models

import (
	"bytes"
	"encoding/json"
)

// PriceValue tolerates the three shapes the legacy catalogs persist for a
// price: a number, free text ("7,5 млн"), or null. Free text is kept
// verbatim so a round trip never loses it.
type PriceValue struct {
	Amount float64
	Raw    string
}

func (p *PriceValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &p.Raw)
	}
	return json.Unmarshal(b, &p.Amount)
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	if p.Raw != "" {
		return json.Marshal(p.Raw)
	}
	return json.Marshal(p.Amount)
}

// FlexString reads a legacy value persisted either as a string or as a
// bare number. Numbers are normalized to their decimal text on save.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(b)
	return nil
}

func (s FlexString) String() string { return string(s) }

// Listing is a catalog entry. The field set is the superset used across
// the twelve categories; category-specific fields stay empty elsewhere.
type Listing struct {
	ID          string      `json:"id"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Category    Category    `json:"category,omitempty"`
	Price       *PriceValue `json:"price,omitempty"`

	Rooms        FlexString `json:"rooms,omitempty"`
	Area         *float64   `json:"area,omitempty"`
	Location     string     `json:"location,omitempty"`
	City         string     `json:"city,omitempty"`
	ListingType  string     `json:"listing_type,omitempty"`
	Kitchen      string     `json:"kitchen,omitempty"`
	GoogleMaps   string     `json:"google_maps,omitempty"`
	GoogleRating FlexString `json:"google_rating,omitempty"`

	RestaurantType string     `json:"restaurant_type,omitempty"`
	PriceCategory  string     `json:"price_category,omitempty"`
	Feature        string     `json:"feature,omitempty"`
	Capacity       FlexString `json:"capacity,omitempty"`
	Days           FlexString `json:"days,omitempty"`
	GroupSize      FlexString `json:"group_size,omitempty"`
	KidsType       string     `json:"kids_type,omitempty"`
	Age            FlexString `json:"age,omitempty"`
	Engine         FlexString `json:"engine,omitempty"`
	Year           FlexString `json:"year,omitempty"`
	Model          string     `json:"model,omitempty"`
	TransportType  string     `json:"transport_type,omitempty"`

	ContactName string `json:"contact_name,omitempty"`
	Contact     string `json:"contact,omitempty"`
	Whatsapp    string `json:"whatsapp,omitempty"`
	Telegram    string `json:"telegram,omitempty"`

	ImageURL       string   `json:"image_url,omitempty"`
	AllImages      []string `json:"all_images,omitempty"`
	TelegramFileID string   `json:"telegram_file_id,omitempty"`
	TelegramPhoto  bool     `json:"telegram_photo,omitempty"`
	TelegramLink   string   `json:"telegram_link,omitempty"`

	Date    string `json:"date,omitempty"`
	AddedAt string `json:"added_at,omitempty"`
	Status  string `json:"status,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
}

const epochSortKey = "1970-01-01"

// SortKey returns the ISO timestamp listings are ordered by, with the
// epoch sentinel for entries that never got a date.
func (l Listing) SortKey() string {
	if l.Date != "" {
		return l.Date
	}
	if l.AddedAt != "" {
		return l.AddedAt
	}
	return epochSortKey
}

// PriceAmount returns the explicit numeric price, 0 when absent.
func (l Listing) PriceAmount() float64 {
	if l.Price == nil {
		return 0
	}
	return l.Price.Amount
}

// PriceText returns the raw free-text price, "" when absent.
func (l Listing) PriceText() string {
	if l.Price == nil {
		return ""
	}
	return l.Price.Raw
}

// ContactLabel returns whichever contact-name field the entry carries.
func (l Listing) ContactLabel() string {
	if l.ContactName != "" {
		return l.ContactName
	}
	return l.Contact
}

// Catalog is one country's full category-keyed listing collections,
// most-recent-first within each category.
type Catalog map[Category][]Listing

// NewCatalog returns an empty catalog carrying exactly the twelve keys.
func NewCatalog() Catalog {
	c := make(Catalog, len(CategoryKeys))
	for _, key := range CategoryKeys {
		c[key] = []Listing{}
	}
	return c
}

// ListingFilter carries the raw read-side filter parameters. Values are
// kept as request strings; normalization happens in the filter pipeline.
type ListingFilter struct {
	ShowHidden     bool
	City           string
	KidsType       string
	MaxAge         string
	TransportType  string
	Model          string
	Year           string
	PriceMin       string
	PriceMax       string
	RealEstateCity string
	ListingType    string
	Sort           string
}

// ListingUpdate is the whitelisted edit payload for admin edits. Pointer
// fields distinguish "leave unchanged" from "clear".
type ListingUpdate struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Price          *string `json:"price,omitempty"`
	Rooms          *string `json:"rooms,omitempty"`
	Area           *string `json:"area,omitempty"`
	Date           *string `json:"date,omitempty"`
	Whatsapp       *string `json:"whatsapp,omitempty"`
	Telegram       *string `json:"telegram,omitempty"`
	ContactName    *string `json:"contact_name,omitempty"`
	ListingType    *string `json:"listing_type,omitempty"`
	City           *string `json:"city,omitempty"`
	Location       *string `json:"location,omitempty"`
	Hidden         *bool   `json:"hidden,omitempty"`
	GoogleMaps     *string `json:"google_maps,omitempty"`
	GoogleRating   *string `json:"google_rating,omitempty"`
	Kitchen        *string `json:"kitchen,omitempty"`
	RestaurantType *string `json:"restaurant_type,omitempty"`
	PriceCategory  *string `json:"price_category,omitempty"`
}

// ChannelMessage is one fetched channel post handed to the bulk importer.
type ChannelMessage struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	PhotoData []byte `json:"photo_data,omitempty"`
}
