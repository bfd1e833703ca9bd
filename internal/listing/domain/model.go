package domain

import (
	"time"
)

type Purpose string

const (
	PurposeSale Purpose = "sale"
	PurposeRent Purpose = "rent"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusSold      ListingStatus = "sold"
	StatusRented    ListingStatus = "rented"
	StatusPending   ListingStatus = "pending"
)

const (
	MaxTitleLen        = 200
	MaxDescriptionLen  = 2000
	MaxPaymentTermsLen = 500
	MaxImageCaptionLen = 200
	MinYearBuilt       = 1800
)

var PropertyTypes = []string{
	"Apartment",
	"House",
	"Villa",
	"Townhouse",
	"Office Space",
	"Shop",
	"Warehouse",
	"Land",
	"Boys Quarters",
}

var Amenities = []string{
	"Swimming Pool",
	"Security",
	"Backup Generator",
	"Air Conditioning",
	"Garage",
	"Garden",
	"Boys Quarters",
	"Staff Quarters",
	"Water Storage Tank",
	"CCTV",
	"Internet",
	"Gym",
	"Tennis Court",
	"Club House",
	"Children's Play Area",
	"Electric Fence",
	"Intercom",
	"Elevator",
	"Satellite TV",
	"Storage Room",
	"Covered Parking",
	"Security Post",
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	Region      string      `json:"region"`
	Coordinates Coordinates `json:"coordinates"`
}

type Features struct {
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	SquareFeet   float64 `json:"squareFeet"`
	YearBuilt    int     `json:"yearBuilt,omitempty"` // 0 means not supplied
	PropertyType string  `json:"propertyType"`
	LotSize      float64 `json:"lotSize"`
	Furnished    bool    `json:"furnished"`
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

type Listing struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"-"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Purpose      Purpose       `json:"purpose"`
	Negotiable   bool          `json:"negotiable"`
	PaymentTerms string        `json:"paymentTerms,omitempty"`
	Location     Location      `json:"location"`
	Features     Features      `json:"features"`
	Amenities    []string      `json:"amenities"`
	Images       []Image       `json:"images"`
	Status       ListingStatus `json:"status"`
	Featured     bool          `json:"featured"`
	Views        int64         `json:"views"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NewListing returns a listing with the schema defaults applied. Callers
// layer the supplied fields on top via ListingUpdate.Apply and then Validate.
func NewListing(ownerID string) *Listing {
	return &Listing{
		OwnerID:    ownerID,
		Negotiable: true,
		Status:     StatusAvailable,
		Amenities:  []string{},
		Images:     []Image{},
	}
}

// Validate checks every invariant of the data model and returns a
// ValidationError naming the first violated field. It runs before every
// persistence write, on create and on merged updates alike.
func (l *Listing) Validate() error {
	if l.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(l.Title) > MaxTitleLen {
		return &ValidationError{Field: "title", Message: "title must be at most 200 characters"}
	}
	if l.Description == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if len(l.Description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Message: "description must be at most 2000 characters"}
	}
	if l.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if l.Purpose != PurposeSale && l.Purpose != PurposeRent {
		return &ValidationError{Field: "purpose", Message: "purpose must be 'sale' or 'rent'"}
	}
	if len(l.PaymentTerms) > MaxPaymentTermsLen {
		return &ValidationError{Field: "paymentTerms", Message: "payment terms must be at most 500 characters"}
	}
	if l.Location.Address == "" {
		return &ValidationError{Field: "location.address", Message: "address is required"}
	}
	if l.Location.City == "" {
		return &ValidationError{Field: "location.city", Message: "city is required"}
	}
	if l.Location.Region == "" {
		return &ValidationError{Field: "location.region", Message: "region is required"}
	}
	if l.Location.Coordinates.Lat < -90 || l.Location.Coordinates.Lat > 90 {
		return &ValidationError{Field: "location.coordinates.lat", Message: "latitude must be between -90 and 90"}
	}
	if l.Location.Coordinates.Lng < -180 || l.Location.Coordinates.Lng > 180 {
		return &ValidationError{Field: "location.coordinates.lng", Message: "longitude must be between -180 and 180"}
	}
	if l.Features.Bedrooms < 0 {
		return &ValidationError{Field: "features.bedrooms", Message: "bedrooms must not be negative"}
	}
	if l.Features.Bathrooms < 0 {
		return &ValidationError{Field: "features.bathrooms", Message: "bathrooms must not be negative"}
	}
	if l.Features.SquareFeet < 0 {
		return &ValidationError{Field: "features.squareFeet", Message: "square feet must not be negative"}
	}
	if !contains(PropertyTypes, l.Features.PropertyType) {
		return &ValidationError{Field: "features.propertyType", Message: "unknown property type"}
	}
	if l.Features.YearBuilt != 0 {
		maxYear := time.Now().Year() + 5
		if l.Features.YearBuilt < MinYearBuilt || l.Features.YearBuilt > maxYear {
			return &ValidationError{Field: "features.yearBuilt", Message: "year built is out of range"}
		}
	}
	if l.Features.LotSize < 0 {
		return &ValidationError{Field: "features.lotSize", Message: "lot size must not be negative"}
	}
	for _, a := range l.Amenities {
		if !contains(Amenities, a) {
			return &ValidationError{Field: "amenities", Message: "unknown amenity: " + a}
		}
	}
	for _, img := range l.Images {
		if img.URL == "" {
			return &ValidationError{Field: "images.url", Message: "image url is required"}
		}
		if len(img.Caption) > MaxImageCaptionLen {
			return &ValidationError{Field: "images.caption", Message: "caption must be at most 200 characters"}
		}
	}
	switch l.Status {
	case StatusAvailable, StatusSold, StatusRented, StatusPending:
	default:
		return &ValidationError{Field: "status", Message: "unknown status"}
	}
	if l.Views < 0 {
		return &ValidationError{Field: "views", Message: "views must not be negative"}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
