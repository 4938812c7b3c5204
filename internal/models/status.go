package models

// StatusReport is the public health snapshot for one country catalog.
type StatusReport struct {
	ParserStatus   string           `json:"parser_status"`
	TotalItems     int              `json:"total_items"`
	TotalListings  int              `json:"total_listings"`
	Categories     map[Category]int `json:"categories"`
	LastUpdate     string           `json:"last_update"`
	ChannelsActive int              `json:"channels_active"`
	Country        Country          `json:"country"`
	OnlineCount    int              `json:"online_count"`
}
