package domain

// ListingUpdate carries the fields of a partial write. A nil pointer means
// "not supplied, keep the current value"; the owner and the view counter are
// deliberately absent so callers can never touch them.
type ListingUpdate struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Price        *float64        `json:"price"`
	Purpose      *Purpose        `json:"purpose"`
	Negotiable   *bool           `json:"negotiable"`
	PaymentTerms *string         `json:"paymentTerms"`
	Location     *LocationUpdate `json:"location"`
	Features     *FeaturesUpdate `json:"features"`
	Amenities    *[]string       `json:"amenities"`
	Images       *[]Image        `json:"images"`
	Status       *ListingStatus  `json:"status"`
	Featured     *bool           `json:"featured"`
}

type LocationUpdate struct {
	Address     *string            `json:"address"`
	City        *string            `json:"city"`
	Region      *string            `json:"region"`
	Coordinates *CoordinatesUpdate `json:"coordinates"`
}

type CoordinatesUpdate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type FeaturesUpdate struct {
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	SquareFeet   *float64 `json:"squareFeet"`
	YearBuilt    *int     `json:"yearBuilt"`
	PropertyType *string  `json:"propertyType"`
	LotSize      *float64 `json:"lotSize"`
	Furnished    *bool    `json:"furnished"`
}

// ValidateRequired checks that the fields a new listing cannot omit are
// present. Updates merge over an existing record, so an absent field means
// "keep the stored value"; on create there is nothing to keep, and the
// numeric fields would otherwise silently default to zero. String fields are
// left to Validate, which already rejects their empty values after the merge.
func (u *ListingUpdate) ValidateRequired() error {
	if u == nil || u.Price == nil {
		return &ValidationError{Field: "price", Message: "price is required"}
	}
	if u.Features == nil || u.Features.SquareFeet == nil {
		return &ValidationError{Field: "features.squareFeet", Message: "square feet is required"}
	}
	if u.Location == nil || u.Location.Coordinates == nil {
		return &ValidationError{Field: "location.coordinates", Message: "coordinates are required"}
	}
	if u.Location.Coordinates.Lat == nil {
		return &ValidationError{Field: "location.coordinates.lat", Message: "latitude is required"}
	}
	if u.Location.Coordinates.Lng == nil {
		return &ValidationError{Field: "location.coordinates.lng", Message: "longitude is required"}
	}
	return nil
}

// Apply merges the supplied fields over the listing. The merged result still
// has to pass Validate before it may be persisted.
func (u *ListingUpdate) Apply(l *Listing) {
	if u == nil {
		return
	}
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Price != nil {
		l.Price = *u.Price
	}
	if u.Purpose != nil {
		l.Purpose = *u.Purpose
	}
	if u.Negotiable != nil {
		l.Negotiable = *u.Negotiable
	}
	if u.PaymentTerms != nil {
		l.PaymentTerms = *u.PaymentTerms
	}
	if u.Location != nil {
		if u.Location.Address != nil {
			l.Location.Address = *u.Location.Address
		}
		if u.Location.City != nil {
			l.Location.City = *u.Location.City
		}
		if u.Location.Region != nil {
			l.Location.Region = *u.Location.Region
		}
		if u.Location.Coordinates != nil {
			if u.Location.Coordinates.Lat != nil {
				l.Location.Coordinates.Lat = *u.Location.Coordinates.Lat
			}
			if u.Location.Coordinates.Lng != nil {
				l.Location.Coordinates.Lng = *u.Location.Coordinates.Lng
			}
		}
	}
	if u.Features != nil {
		if u.Features.Bedrooms != nil {
			l.Features.Bedrooms = *u.Features.Bedrooms
		}
		if u.Features.Bathrooms != nil {
			l.Features.Bathrooms = *u.Features.Bathrooms
		}
		if u.Features.SquareFeet != nil {
			l.Features.SquareFeet = *u.Features.SquareFeet
		}
		if u.Features.YearBuilt != nil {
			l.Features.YearBuilt = *u.Features.YearBuilt
		}
		if u.Features.PropertyType != nil {
			l.Features.PropertyType = *u.Features.PropertyType
		}
		if u.Features.LotSize != nil {
			l.Features.LotSize = *u.Features.LotSize
		}
		if u.Features.Furnished != nil {
			l.Features.Furnished = *u.Features.Furnished
		}
	}
	if u.Amenities != nil {
		l.Amenities = *u.Amenities
	}
	if u.Images != nil {
		l.Images = *u.Images
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.Featured != nil {
		l.Featured = *u.Featured
	}
}
