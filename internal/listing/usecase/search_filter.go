package usecase

import (
	"net/url"
	"strconv"

	"github.com/estatehub/listing-service/internal/listing/domain"
)

// BuildFilter translates flat query parameters into the search predicate.
// Pure transformation, no I/O. Absent parameters impose no constraint,
// unrecognized keys are ignored, and values that fail to parse are treated as
// absent. Bedrooms and bathrooms become lower bounds; furnished and featured
// match only when the literal token is "true"; amenities may repeat and all
// of them must be present on a match.
func BuildFilter(params url.Values) domain.Filter {
	var f domain.Filter

	if v := params.Get("purpose"); v != "" {
		f.Purpose = domain.Purpose(v)
	}
	f.Region = params.Get("region")
	f.City = params.Get("city")
	f.PropertyType = params.Get("propertyType")

	if v := params.Get("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinBedrooms = &n
		}
	}
	if v := params.Get("bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinBathrooms = &n
		}
	}
	if v := params.Get("furnished"); v != "" {
		furnished := v == "true"
		f.Furnished = &furnished
	}
	if v := params.Get("featured"); v != "" {
		featured := v == "true"
		f.Featured = &featured
	}
	if v := params.Get("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := params.Get("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if amenities, ok := params["amenities"]; ok && len(amenities) > 0 {
		f.Amenities = amenities
	}

	return f
}
