package domain

// Destination is a bookable destination listed on the public site.
// The admin console calls these "packages".
type Destination struct {
	ID          ID      `json:"id" table:"ID"`
	Name        string  `json:"name" table:"NAME"`
	Duration    string  `json:"duration" table:"DURATION"`
	Price       float64 `json:"price" table:"PRICE"`
	Category    string  `json:"category,omitempty" table:"CATEGORY"`
	Status      string  `json:"status,omitempty" table:"STATUS"`
	Bookings    int     `json:"bookings,omitempty" table:"BOOKINGS,wide"`
	Revenue     float64 `json:"revenue,omitempty" table:"REVENUE,wide"`
	Image       string  `json:"image,omitempty" table:"IMAGE,wide"`
	Description string  `json:"description,omitempty" table:"-"`
}

// DestinationInput is the body of destination create and update calls.
type DestinationInput struct {
	Name        string  `json:"name" validate:"required"`
	Duration    string  `json:"duration" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Category    string  `json:"category,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Image       string  `json:"image,omitempty" validate:"omitempty,url"`
	Description string  `json:"description,omitempty"`
}

// InputFrom returns the update body that reproduces d.
func (d Destination) InputFrom() DestinationInput {
	return DestinationInput{
		Name:        d.Name,
		Duration:    d.Duration,
		Price:       d.Price,
		Category:    d.Category,
		Status:      d.Status,
		Image:       d.Image,
		Description: d.Description,
	}
}

// SafariPackage is a published itinerary.
type SafariPackage struct {
	ID          ID      `json:"id" table:"ID"`
	Name        string  `json:"name" table:"NAME"`
	Duration    string  `json:"duration" table:"DURATION"`
	Price       float64 `json:"price" table:"PRICE"`
	Tag         string  `json:"tag,omitempty" table:"TAG"`
	Type        string  `json:"type,omitempty" table:"TYPE"`
	Published   bool    `json:"published" table:"PUBLISHED"`
	ImageURL    string  `json:"image_url,omitempty" table:"IMAGE,wide"`
	Description string  `json:"description,omitempty" table:"-"`
	Itinerary   string  `json:"itinerary,omitempty" table:"-"`
	Includes    string  `json:"includes,omitempty" table:"-"`
	Excludes    string  `json:"excludes,omitempty" table:"-"`
}

// SafariPackageInput is the body of safari package create and update calls.
type SafariPackageInput struct {
	Name        string  `json:"name" validate:"required"`
	Duration    string  `json:"duration" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Tag         string  `json:"tag,omitempty"`
	Type        string  `json:"type,omitempty"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Description string  `json:"description,omitempty"`
	Itinerary   string  `json:"itinerary,omitempty"`
	Includes    string  `json:"includes,omitempty"`
	Excludes    string  `json:"excludes,omitempty"`
	Published   bool    `json:"published"`
}

// InputFrom returns the update body that reproduces p.
func (p SafariPackage) InputFrom() SafariPackageInput {
	return SafariPackageInput{
		Name:        p.Name,
		Duration:    p.Duration,
		Price:       p.Price,
		Tag:         p.Tag,
		Type:        p.Type,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Itinerary:   p.Itinerary,
		Includes:    p.Includes,
		Excludes:    p.Excludes,
		Published:   p.Published,
	}
}

// SyncImagesResult reports a destination image sync run.
// Destinations take the image of the safari package with the same name.
type SyncImagesResult struct {
	SourceCount    int `json:"sourceCount" table:"PACKAGES CHECKED"`
	UpdatedCount   int `json:"updatedCount" table:"DESTINATIONS UPDATED"`
	UnmatchedCount int `json:"unmatchedCount" table:"UNMATCHED"`
}
