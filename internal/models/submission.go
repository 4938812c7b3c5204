package models

import "strconv"

// PhotoUpload is one raw image attached to a public submission.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// Submission is a category-specific public submission. Each category has
// its own record type validated at the boundary; Listing() maps it onto
// the shared catalog shape.
type Submission interface {
	Category() Category
	Listing() Listing
}

// digitPrice parses an all-digit price field, 0 otherwise. Free-text
// prices are left for the normalization heuristics at read time.
func digitPrice(s string) *PriceValue {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return &PriceValue{}
	}
	return &PriceValue{Amount: float64(n)}
}

type RealEstateSubmission struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Price       string
	Rooms       string
	Area        string
	Location    string
	City        string
	ContactName string
	Whatsapp    string
	Telegram    string
	ListingType string
}

func (s RealEstateSubmission) Category() Category { return CategoryRealEstate }

func (s RealEstateSubmission) Listing() Listing {
	l := Listing{
		Title:       s.Title,
		Description: s.Description,
		Category:    CategoryRealEstate,
		Price:       digitPrice(s.Price),
		Rooms:       FlexString(s.Rooms),
		Location:    s.Location,
		City:        s.City,
		ContactName: s.ContactName,
		Whatsapp:    s.Whatsapp,
		Telegram:    s.Telegram,
		ListingType: s.ListingType,
	}
	if area, err := strconv.ParseFloat(s.Area, 64); err == nil {
		l.Area = &area
	}
	return l
}

type RestaurantSubmission struct {
	Title          string `validate:"required"`
	Description    string `validate:"required"`
	Kitchen        string
	Location       string
	City           string
	GoogleMaps     string
	ContactName    string
	Whatsapp       string
	Telegram       string
	PriceCategory  string
	RestaurantType string
}

func (s RestaurantSubmission) Category() Category { return CategoryRestaurants }

func (s RestaurantSubmission) Listing() Listing {
	return Listing{
		Title:          s.Title,
		Description:    s.Description,
		Category:       CategoryRestaurants,
		Kitchen:        s.Kitchen,
		Location:       s.Location,
		City:           s.City,
		GoogleMaps:     s.GoogleMaps,
		ContactName:    s.ContactName,
		Whatsapp:       s.Whatsapp,
		Telegram:       s.Telegram,
		PriceCategory:  s.PriceCategory,
		RestaurantType: s.RestaurantType,
	}
}

type EntertainmentSubmission struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Feature     string
	Location    string
	City        string
	ContactName string
	Whatsapp    string
	Telegram    string
	Capacity    string
}

func (s EntertainmentSubmission) Category() Category { return CategoryEntertainment }

func (s EntertainmentSubmission) Listing() Listing {
	return Listing{
		Title:       s.Title,
		Description: s.Description,
		Category:    CategoryEntertainment,
		Feature:     s.Feature,
		Location:    s.Location,
		City:        s.City,
		ContactName: s.ContactName,
		Whatsapp:    s.Whatsapp,
		Telegram:    s.Telegram,
		Capacity:    FlexString(s.Capacity),
	}
}

type TourSubmission struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Days        string
	Price       string
	Location    string
	City        string
	ContactName string
	Whatsapp    string
	Telegram    string
	GroupSize   string
}

func (s TourSubmission) Category() Category { return CategoryTours }

func (s TourSubmission) Listing() Listing {
	return Listing{
		Title:       s.Title,
		Description: s.Description,
		Category:    CategoryTours,
		Days:        FlexString(s.Days),
		Price:       digitPrice(s.Price),
		Location:    s.Location,
		City:        s.City,
		ContactName: s.ContactName,
		Whatsapp:    s.Whatsapp,
		Telegram:    s.Telegram,
		GroupSize:   FlexString(s.GroupSize),
	}
}

type TransportSubmission struct {
	Title         string `validate:"required"`
	Description   string `validate:"required"`
	Engine        string
	Year          string
	Price         string
	TransportType string
	Location      string
	City          string
	ContactName   string
	Whatsapp      string
	Telegram      string
}

func (s TransportSubmission) Category() Category { return CategoryTransport }

func (s TransportSubmission) Listing() Listing {
	l := Listing{
		Title:         s.Title,
		Description:   s.Description,
		Category:      CategoryTransport,
		Engine:        FlexString(s.Engine),
		Price:         digitPrice(s.Price),
		TransportType: s.TransportType,
		Location:      s.Location,
		City:          s.City,
		ContactName:   s.ContactName,
		Whatsapp:      s.Whatsapp,
		Telegram:      s.Telegram,
	}
	if _, err := strconv.Atoi(s.Year); err == nil {
		l.Year = FlexString(s.Year)
	}
	return l
}

type KidsSubmission struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	KidsType    string
	City        string `validate:"required"`
	Age         string `validate:"required"`
	Location    string
	GoogleMaps  string
	ContactName string
	Whatsapp    string
	Telegram    string
}

func (s KidsSubmission) Category() Category { return CategoryKids }

func (s KidsSubmission) Listing() Listing {
	return Listing{
		Title:       s.Title,
		Description: s.Description,
		Category:    CategoryKids,
		KidsType:    s.KidsType,
		City:        s.City,
		Age:         FlexString(s.Age),
		Location:    s.Location,
		GoogleMaps:  s.GoogleMaps,
		ContactName: s.ContactName,
		Whatsapp:    s.Whatsapp,
		Telegram:    s.Telegram,
	}
}
