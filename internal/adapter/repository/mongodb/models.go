package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/user"
)

type coordinatesDocument struct {
	Lat float64 `bson:"lat"`
	Lng float64 `bson:"lng"`
}

type locationDocument struct {
	Address     string              `bson:"address"`
	City        string              `bson:"city"`
	Region      string              `bson:"region"`
	Coordinates coordinatesDocument `bson:"coordinates"`
}

type featuresDocument struct {
	Bedrooms     int     `bson:"bedrooms"`
	Bathrooms    int     `bson:"bathrooms"`
	SquareFeet   float64 `bson:"square_feet"`
	YearBuilt    int     `bson:"year_built,omitempty"`
	PropertyType string  `bson:"property_type"`
	LotSize      float64 `bson:"lot_size"`
	Furnished    bool    `bson:"furnished"`
}

type imageDocument struct {
	URL     string `bson:"url"`
	Caption string `bson:"caption,omitempty"`
}

type listingDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Owner        string               `bson:"owner"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	Price        float64              `bson:"price"`
	Purpose      domain.Purpose       `bson:"purpose"`
	Negotiable   bool                 `bson:"negotiable"`
	PaymentTerms string               `bson:"payment_terms,omitempty"`
	Location     locationDocument     `bson:"location"`
	Features     featuresDocument     `bson:"features"`
	Amenities    []string             `bson:"amenities"`
	Images       []imageDocument      `bson:"images"`
	Status       domain.ListingStatus `bson:"status"`
	Featured     bool                 `bson:"featured"`
	Views        int64                `bson:"views"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone,omitempty"`
	Password     string             `bson:"password"`
	Role         user.Role          `bson:"role"`
	ProfileImage string             `bson:"profile_image,omitempty"`
	Favorites    []string           `bson:"favorites"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// toListingDocument converts the domain model into its stored form. An empty
// domain ID maps to NilObjectID so Mongo generates one on insert; the
// repository writes the generated hex back onto the domain object.
func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	docID := primitive.NilObjectID
	if l.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
	}

	images := make([]imageDocument, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, imageDocument{URL: img.URL, Caption: img.Caption})
	}

	return &listingDocument{
		ID:           docID,
		Owner:        l.OwnerID,
		Title:        l.Title,
		Description:  l.Description,
		Price:        l.Price,
		Purpose:      l.Purpose,
		Negotiable:   l.Negotiable,
		PaymentTerms: l.PaymentTerms,
		Location: locationDocument{
			Address: l.Location.Address,
			City:    l.Location.City,
			Region:  l.Location.Region,
			Coordinates: coordinatesDocument{
				Lat: l.Location.Coordinates.Lat,
				Lng: l.Location.Coordinates.Lng,
			},
		},
		Features: featuresDocument{
			Bedrooms:     l.Features.Bedrooms,
			Bathrooms:    l.Features.Bathrooms,
			SquareFeet:   l.Features.SquareFeet,
			YearBuilt:    l.Features.YearBuilt,
			PropertyType: l.Features.PropertyType,
			LotSize:      l.Features.LotSize,
			Furnished:    l.Features.Furnished,
		},
		Amenities: l.Amenities,
		Images:    images,
		Status:    l.Status,
		Featured:  l.Featured,
		Views:     l.Views,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	images := make([]domain.Image, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, domain.Image{URL: img.URL, Caption: img.Caption})
	}
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return &domain.Listing{
		ID:           d.ID.Hex(),
		OwnerID:      d.Owner,
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Purpose:      d.Purpose,
		Negotiable:   d.Negotiable,
		PaymentTerms: d.PaymentTerms,
		Location: domain.Location{
			Address: d.Location.Address,
			City:    d.Location.City,
			Region:  d.Location.Region,
			Coordinates: domain.Coordinates{
				Lat: d.Location.Coordinates.Lat,
				Lng: d.Location.Coordinates.Lng,
			},
		},
		Features: domain.Features{
			Bedrooms:     d.Features.Bedrooms,
			Bathrooms:    d.Features.Bathrooms,
			SquareFeet:   d.Features.SquareFeet,
			YearBuilt:    d.Features.YearBuilt,
			PropertyType: d.Features.PropertyType,
			LotSize:      d.Features.LotSize,
			Furnished:    d.Features.Furnished,
		},
		Amenities: amenities,
		Images:    images,
		Status:    d.Status,
		Featured:  d.Featured,
		Views:     d.Views,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toUserDocument(u *user.User) (*userDocument, error) {
	docID := primitive.NilObjectID
	if u.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", u.ID, err)
		}
	}
	return &userDocument{
		ID:           docID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Password:     u.Password,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		Favorites:    u.Favorites,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

func toDomainUser(d *userDocument) *user.User {
	favorites := d.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	return &user.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Password:     d.Password,
		Role:         d.Role,
		ProfileImage: d.ProfileImage,
		Favorites:    favorites,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
