package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	// FindByIDAndIncrementViews atomically bumps the view counter and returns
	// the record as it stands after the increment.
	FindByIDAndIncrementViews(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, error)
}
