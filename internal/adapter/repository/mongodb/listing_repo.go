package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/estatehub/listing-service/internal/listing/domain"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	listing.ID = doc.ID.Hex()
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	objID, err := objectID(id)
	if err != nil {
		return domain.ErrListingNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomainListing(&doc), nil
}

// FindByIDAndIncrementViews bumps the view counter inside a single
// FindOneAndUpdate, so concurrent fetches each count. The returned record
// already reflects the increment.
func (r *ListingRepository) FindByIDAndIncrementViews(ctx context.Context, id string) (*domain.Listing, error) {
	objID, err := objectID(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc listingDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"views": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	query := bson.M{}
	if filter.Purpose != "" {
		query["purpose"] = filter.Purpose
	}
	if filter.Region != "" {
		query["location.region"] = filter.Region
	}
	if filter.City != "" {
		query["location.city"] = filter.City
	}
	if filter.PropertyType != "" {
		query["features.property_type"] = filter.PropertyType
	}
	if filter.MinBedrooms != nil {
		query["features.bedrooms"] = bson.M{"$gte": *filter.MinBedrooms}
	}
	if filter.MinBathrooms != nil {
		query["features.bathrooms"] = bson.M{"$gte": *filter.MinBathrooms}
	}
	if filter.Furnished != nil {
		query["features.furnished"] = *filter.Furnished
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}
	if len(filter.Amenities) > 0 {
		query["amenities"] = bson.M{"$all": filter.Amenities}
	}

	// Featured listings first, newest first within each group.
	opts := options.Find().SetSort(bson.D{
		{Key: "featured", Value: -1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	listings := make([]*domain.Listing, 0)
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		listings = append(listings, toDomainListing(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return listings, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
