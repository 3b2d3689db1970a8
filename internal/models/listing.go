package models

// StationAccess is one nearby-station entry from the listing's access
// table. Minutes stays nil when the row had no readable walk phrase.
type StationAccess struct {
	Name    string `json:"name"`
	Minutes *int   `json:"minutes"`
}

// Listing is the transient parse result for a single listing page. Text
// fields hold source-language values exactly as extracted; prices are
// already comma-grouped yen strings. A Listing lives for one run and is
// never persisted.
type Listing struct {
	URL           string          `json:"url"`
	Name          string          `json:"name"`
	Rent          string          `json:"rent"`
	ManagementFee string          `json:"management_fee"`
	Layout        string          `json:"layout"`
	Size          string          `json:"size"`
	Category      string          `json:"category"`
	Ward          string          `json:"ward"`
	Street        string          `json:"street"`
	Deposit       string          `json:"deposit"`
	KeyMoney      string          `json:"key_money"`
	Stations      []StationAccess `json:"stations"`
	CoverImage    string          `json:"cover_image"`
	PlanImage     string          `json:"plan_image"`
	Gallery       []string        `json:"gallery"`
}

// Attachment is the store's attachment object shape.
type Attachment struct {
	URL string `json:"url"`
}

// ListingRecord is the flat outbound row keyed by the store's exact field
// names. Link fields are record-ID lists that must marshal to [] when
// unresolved, never null; walk minutes pass through as nullable values.
type ListingRecord struct {
	Name             string       `json:"Name"`
	Price            string       `json:"Property Price"`
	ManagementFee    string       `json:"Property Management Fee"`
	Layout           []string     `json:"Property Layout"`
	Size             string       `json:"Property Size"`
	Locations        []string     `json:"Property Locations"`
	Location         string       `json:"Location"`
	Deposit          string       `json:"Property Deposit"`
	KeyMoney         string       `json:"Property Key Money"`
	CoverImage       []Attachment `json:"Property Cover Image"`
	PlanImage        []Attachment `json:"Property Plan Image"`
	Images           []Attachment `json:"Property Images"`
	AccessOneStation []string     `json:"Access One: Train Station"`
	AccessOneMinutes *int         `json:"Access One: Minutes to Walk"`
	AccessTwoStation []string     `json:"Access Two: Train Station"`
	AccessTwoMinutes *int         `json:"Access Two: Minutes to Walk"`
	Categories       []string     `json:"Property Categories"`
	Type             []string     `json:"Property Type"`
	PriceRange       []string     `json:"Property Price Range"`
}
