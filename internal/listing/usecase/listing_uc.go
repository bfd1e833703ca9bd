package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/user"
)

const (
	SubjectListingCreated = "listings.created"
	SubjectListingUpdated = "listings.updated"
	SubjectListingDeleted = "listings.deleted"
)

// EventPublisher delivers best-effort lifecycle events; a publish failure is
// logged and never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

type Mailer interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}

// AssetCleaner removes the external objects behind a listing's images. It is
// best-effort by contract: it waits for every attempt but reports nothing.
type AssetCleaner interface {
	RemoveImages(ctx context.Context, images []domain.Image)
}

// ListingView is a listing with its owner summary resolved, the shape every
// read operation returns.
type ListingView struct {
	*domain.Listing
	Owner *user.Summary `json:"owner,omitempty"`
}

type ListingUsecase struct {
	repo      domain.ListingRepository
	owners    user.SummaryDirectory
	assets    AssetCleaner
	publisher EventPublisher
	mailer    Mailer
	logger    *zap.Logger
}

func NewListingUsecase(repo domain.ListingRepository, owners user.SummaryDirectory, assets AssetCleaner, publisher EventPublisher, mailer Mailer, logger *zap.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		owners:    owners,
		assets:    assets,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger,
	}
}

// CreateListing persists a new listing owned by the actor. Any owner value in
// the supplied fields is ignored: ownership always comes from the
// authenticated caller.
func (uc *ListingUsecase) CreateListing(ctx context.Context, actor *user.User, fields *domain.ListingUpdate) (*ListingView, error) {
	if err := fields.ValidateRequired(); err != nil {
		return nil, err
	}

	listing := domain.NewListing(actor.ID)
	fields.Apply(listing)

	if err := listing.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to create listing", zap.String("owner_id", actor.ID), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, SubjectListingCreated, listing)
	uc.notifyOwner(actor, listing)

	return uc.withOwner(ctx, listing), nil
}

// GetListing returns a single listing and, as a side effect of every
// successful fetch, bumps its view counter by one.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*ListingView, error) {
	listing, err := uc.repo.FindByIDAndIncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.withOwner(ctx, listing), nil
}

func (uc *ListingUsecase) ListListings(ctx context.Context) ([]*ListingView, error) {
	return uc.SearchListings(ctx, domain.Filter{})
}

func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter) ([]*ListingView, error) {
	listings, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("failed to search listings", zap.Error(err))
		return nil, err
	}

	views := make([]*ListingView, 0, len(listings))
	summaries := make(map[string]*user.Summary, len(listings))
	for _, l := range listings {
		owner, ok := summaries[l.OwnerID]
		if !ok {
			owner = uc.resolveOwner(ctx, l.OwnerID)
			summaries[l.OwnerID] = owner
		}
		views = append(views, &ListingView{Listing: l, Owner: owner})
	}
	return views, nil
}

// UpdateListing merges the supplied fields over the stored record, re-checks
// every invariant on the merged result and persists it. Only the owner or an
// admin may update.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, actor *user.User, id string, fields *domain.ListingUpdate) (*ListingView, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.CanMutate(actor, listing.OwnerID) {
		uc.logger.Warn("update forbidden",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.OwnerID),
			zap.String("actor_id", actor.ID))
		return nil, domain.ErrForbidden
	}

	fields.Apply(listing)
	if err := listing.Validate(); err != nil {
		return nil, err
	}

	listing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to update listing", zap.String("listing_id", id), zap.Error(err))
		return nil, err
	}

	uc.publish(ctx, SubjectListingUpdated, listing)
	return uc.withOwner(ctx, listing), nil
}

// DeleteListing removes a listing after clearing its external image objects.
// Asset cleanup is best-effort: the record is removed even when every delete
// against the object store fails.
func (uc *ListingUsecase) DeleteListing(ctx context.Context, actor *user.User, id string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !domain.CanMutate(actor, listing.OwnerID) {
		uc.logger.Warn("delete forbidden",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.OwnerID),
			zap.String("actor_id", actor.ID))
		return domain.ErrForbidden
	}

	if len(listing.Images) > 0 {
		uc.assets.RemoveImages(ctx, listing.Images)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return err
	}

	uc.publish(ctx, SubjectListingDeleted, listing)
	return nil
}

func (uc *ListingUsecase) withOwner(ctx context.Context, listing *domain.Listing) *ListingView {
	return &ListingView{Listing: listing, Owner: uc.resolveOwner(ctx, listing.OwnerID)}
}

// resolveOwner never fails a read: a listing without a resolvable owner is
// returned without the summary.
func (uc *ListingUsecase) resolveOwner(ctx context.Context, ownerID string) *user.Summary {
	if uc.owners == nil {
		return nil
	}
	summary, err := uc.owners.SummaryByID(ctx, ownerID)
	if err != nil {
		uc.logger.Warn("failed to resolve listing owner", zap.String("owner_id", ownerID), zap.Error(err))
		return nil
	}
	return summary
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, listing); err != nil {
		uc.logger.Warn("failed to publish listing event", zap.String("subject", subject), zap.Error(err))
	}
}

func (uc *ListingUsecase) notifyOwner(actor *user.User, listing *domain.Listing) {
	if uc.mailer == nil || actor.Email == "" {
		return
	}
	go func() {
		if err := uc.mailer.SendListingCreatedEmail(actor.Email, listing.Title); err != nil {
			uc.logger.Warn("failed to send listing created email",
				zap.String("listing_id", listing.ID), zap.Error(err))
		}
	}()
}
