package domain

// Filter is the search predicate consumed by ListingRepository.FindByFilter.
// Nil pointers and empty strings impose no constraint. MinBedrooms and
// MinBathrooms are lower bounds: searching for 3 bedrooms means "at least 3".
// Amenities is a superset match: a listing qualifies only if it carries every
// requested amenity.
type Filter struct {
	Purpose      Purpose
	Region       string
	City         string
	PropertyType string
	MinBedrooms  *int
	MinBathrooms *int
	Furnished    *bool
	Featured     *bool
	MinPrice     *float64
	MaxPrice     *float64
	Amenities    []string
}
