package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estatehub/listing-service/internal/user"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": u.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return user.ErrEmailTaken
	}

	doc, err := toUserDocument(u)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrNotFound
	}
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc userDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	doc, err := toUserDocument(u)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateByID(ctx, doc.ID, bson.M{"$set": doc})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

// SummaryByID fetches only the contact projection attached to listings.
func (r *UserRepository) SummaryByID(ctx context.Context, id string) (*user.Summary, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, user.ErrNotFound
	}

	var doc struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Email string             `bson:"email"`
		Phone string             `bson:"phone,omitempty"`
	}
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &user.Summary{ID: doc.ID.Hex(), Name: doc.Name, Email: doc.Email, Phone: doc.Phone}, nil
}
