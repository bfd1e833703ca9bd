package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/user"
)

type mockListingRepo struct {
	mock.Mock
}

func (m *mockListingRepo) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockListingRepo) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockListingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockListingRepo) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepo) FindByIDAndIncrementViews(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*domain.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockListingRepo) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Listing, error) {
	args := m.Called(ctx, filter)
	if ls, ok := args.Get(0).([]*domain.Listing); ok {
		return ls, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSummaryDirectory struct {
	mock.Mock
}

func (m *mockSummaryDirectory) SummaryByID(ctx context.Context, id string) (*user.Summary, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*user.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockAssetCleaner struct {
	mock.Mock
}

func (m *mockAssetCleaner) RemoveImages(ctx context.Context, images []domain.Image) {
	m.Called(ctx, images)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

// newTestListingUsecase maps absent collaborators to true interface nils so
// the usecase's nil checks still apply.
func newTestListingUsecase(repo *mockListingRepo, owners *mockSummaryDirectory, assets *mockAssetCleaner, publisher *mockEventPublisher) *ListingUsecase {
	var (
		ownersDir user.SummaryDirectory
		cleaner   AssetCleaner
		events    EventPublisher
	)
	if owners != nil {
		ownersDir = owners
	}
	if assets != nil {
		cleaner = assets
	}
	if publisher != nil {
		events = publisher
	}
	return NewListingUsecase(repo, ownersDir, cleaner, events, nil, zap.NewNop())
}

func strPtr(s string) *string                     { return &s }
func floatPtr(f float64) *float64                 { return &f }
func purposePtr(p domain.Purpose) *domain.Purpose { return &p }

func validCreateFields() *domain.ListingUpdate {
	return &domain.ListingUpdate{
		Title:       strPtr("Spacious two bedroom apartment"),
		Description: strPtr("Bright apartment close to the city center."),
		Price:       floatPtr(250000),
		Purpose:     purposePtr(domain.PurposeSale),
		Location: &domain.LocationUpdate{
			Address: strPtr("12 Oak Street"),
			City:    strPtr("Accra"),
			Region:  strPtr("Greater Accra"),
			Coordinates: &domain.CoordinatesUpdate{
				Lat: floatPtr(5.6037),
				Lng: floatPtr(-0.1870),
			},
		},
		Features: &domain.FeaturesUpdate{
			SquareFeet:   floatPtr(1100),
			PropertyType: strPtr("Apartment"),
		},
	}
}

func TestCreateListingOwnerComesFromActor(t *testing.T) {
	repo := new(mockListingRepo)
	owners := new(mockSummaryDirectory)
	publisher := new(mockEventPublisher)
	uc := newTestListingUsecase(repo, owners, nil, publisher)

	actor := &user.User{ID: "actor-1", Role: user.RoleAgent}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.OwnerID == "actor-1"
	})).Return(nil)
	owners.On("SummaryByID", mock.Anything, "actor-1").Return(&user.Summary{ID: "actor-1", Name: "A"}, nil)
	publisher.On("Publish", mock.Anything, SubjectListingCreated, mock.Anything).Return(nil)

	view, err := uc.CreateListing(context.Background(), actor, validCreateFields())
	require.NoError(t, err)

	assert.Equal(t, "actor-1", view.OwnerID)
	assert.Equal(t, "actor-1", view.Owner.ID)
	assert.True(t, view.Negotiable)
	assert.Equal(t, domain.StatusAvailable, view.Status)
	assert.False(t, view.CreatedAt.IsZero())
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateListingInvalidFieldsNeverPersisted(t *testing.T) {
	repo := new(mockListingRepo)
	uc := newTestListingUsecase(repo, nil, nil, nil)

	fields := validCreateFields()
	fields.Location.Coordinates.Lat = floatPtr(95)

	_, err := uc.CreateListing(context.Background(), &user.User{ID: "actor-1"}, fields)
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "location.coordinates.lat", vErr.Field)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateListingOmittedRequiredNumbersRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.ListingUpdate)
		field  string
	}{
		{"no price", func(f *domain.ListingUpdate) { f.Price = nil }, "price"},
		{"no features block", func(f *domain.ListingUpdate) { f.Features = nil }, "features.squareFeet"},
		{"no square feet", func(f *domain.ListingUpdate) { f.Features.SquareFeet = nil }, "features.squareFeet"},
		{"no location block", func(f *domain.ListingUpdate) { f.Location = nil }, "location.coordinates"},
		{"no coordinates", func(f *domain.ListingUpdate) { f.Location.Coordinates = nil }, "location.coordinates"},
		{"no latitude", func(f *domain.ListingUpdate) { f.Location.Coordinates.Lat = nil }, "location.coordinates.lat"},
		{"no longitude", func(f *domain.ListingUpdate) { f.Location.Coordinates.Lng = nil }, "location.coordinates.lng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockListingRepo)
			uc := newTestListingUsecase(repo, nil, nil, nil)

			fields := validCreateFields()
			tt.mutate(fields)

			// An omitted field must never be persisted as its zero value.
			_, err := uc.CreateListing(context.Background(), &user.User{ID: "actor-1"}, fields)
			require.Error(t, err)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestGetListingIncrementsViews(t *testing.T) {
	repo := new(mockListingRepo)
	owners := new(mockSummaryDirectory)
	uc := newTestListingUsecase(repo, owners, nil, nil)

	stored := &domain.Listing{ID: "l1", OwnerID: "u1", Views: 8}
	repo.On("FindByIDAndIncrementViews", mock.Anything, "l1").Return(stored, nil)
	owners.On("SummaryByID", mock.Anything, "u1").Return(&user.Summary{ID: "u1"}, nil)

	view, err := uc.GetListing(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, int64(8), view.Views)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestGetListingNotFound(t *testing.T) {
	repo := new(mockListingRepo)
	uc := newTestListingUsecase(repo, nil, nil, nil)

	repo.On("FindByIDAndIncrementViews", mock.Anything, "missing").Return(nil, domain.ErrListingNotFound)

	_, err := uc.GetListing(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestSearchListingsAttachesOwnerSummaries(t *testing.T) {
	repo := new(mockListingRepo)
	owners := new(mockSummaryDirectory)
	uc := newTestListingUsecase(repo, owners, nil, nil)

	listings := []*domain.Listing{
		{ID: "l1", OwnerID: "u1"},
		{ID: "l2", OwnerID: "u1"},
		{ID: "l3", OwnerID: "u2"},
	}
	repo.On("FindByFilter", mock.Anything, mock.Anything).Return(listings, nil)
	owners.On("SummaryByID", mock.Anything, "u1").Return(&user.Summary{ID: "u1", Name: "First"}, nil).Once()
	owners.On("SummaryByID", mock.Anything, "u2").Return(nil, user.ErrNotFound).Once()

	views, err := uc.SearchListings(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "First", views[0].Owner.Name)
	assert.Equal(t, "First", views[1].Owner.Name)
	// A listing whose owner cannot be resolved is still returned.
	assert.Nil(t, views[2].Owner)
	owners.AssertExpectations(t)
}

func TestUpdateListingForbiddenForNonOwner(t *testing.T) {
	repo := new(mockListingRepo)
	uc := newTestListingUsecase(repo, nil, nil, nil)

	repo.On("FindByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1", OwnerID: "owner-1"}, nil)

	actor := &user.User{ID: "someone-else", Role: user.RoleAgent}
	_, err := uc.UpdateListing(context.Background(), actor, "l1", &domain.ListingUpdate{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateListingAdminMayUpdateAnything(t *testing.T) {
	repo := new(mockListingRepo)
	owners := new(mockSummaryDirectory)
	publisher := new(mockEventPublisher)
	uc := newTestListingUsecase(repo, owners, nil, publisher)

	stored := &domain.Listing{ID: "l1", OwnerID: "owner-1"}
	fields := validCreateFields()
	fields.Title = strPtr("Admin edit")

	repo.On("FindByID", mock.Anything, "l1").Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Title == "Admin edit" && l.OwnerID == "owner-1"
	})).Return(nil)
	owners.On("SummaryByID", mock.Anything, "owner-1").Return(&user.Summary{ID: "owner-1"}, nil)
	publisher.On("Publish", mock.Anything, SubjectListingUpdated, mock.Anything).Return(nil)

	admin := &user.User{ID: "root", Role: user.RoleAdmin}
	view, err := uc.UpdateListing(context.Background(), admin, "l1", fields)
	require.NoError(t, err)
	assert.Equal(t, "Admin edit", view.Title)
	repo.AssertExpectations(t)
}

func TestUpdateListingMergedResultRevalidated(t *testing.T) {
	repo := new(mockListingRepo)
	uc := newTestListingUsecase(repo, nil, nil, nil)

	stored := &domain.Listing{
		ID:          "l1",
		OwnerID:     "owner-1",
		Title:       "Valid stored listing",
		Description: "Description",
		Price:       100,
		Purpose:     domain.PurposeRent,
		Location: domain.Location{
			Address: "1 Road", City: "Accra", Region: "Greater Accra",
		},
		Features: domain.Features{PropertyType: "House"},
		Status:   domain.StatusAvailable,
	}
	repo.On("FindByID", mock.Anything, "l1").Return(stored, nil)

	owner := &user.User{ID: "owner-1"}
	_, err := uc.UpdateListing(context.Background(), owner, "l1", &domain.ListingUpdate{
		Location: &domain.LocationUpdate{
			Coordinates: &domain.CoordinatesUpdate{Lng: floatPtr(200)},
		},
	})
	require.Error(t, err)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "location.coordinates.lng", vErr.Field)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteListingCleansImagesFirst(t *testing.T) {
	repo := new(mockListingRepo)
	assets := new(mockAssetCleaner)
	publisher := new(mockEventPublisher)
	uc := newTestListingUsecase(repo, nil, assets, publisher)

	images := []domain.Image{{URL: "http://store/bucket/properties/abc.jpg"}}
	stored := &domain.Listing{ID: "l1", OwnerID: "owner-1", Images: images}

	repo.On("FindByID", mock.Anything, "l1").Return(stored, nil)
	assets.On("RemoveImages", mock.Anything, images).Return()
	repo.On("Delete", mock.Anything, "l1").Return(nil)
	publisher.On("Publish", mock.Anything, SubjectListingDeleted, mock.Anything).Return(nil)

	owner := &user.User{ID: "owner-1"}
	require.NoError(t, uc.DeleteListing(context.Background(), owner, "l1"))
	assets.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestDeleteListingSkipsCleanupWithoutImages(t *testing.T) {
	repo := new(mockListingRepo)
	assets := new(mockAssetCleaner)
	uc := newTestListingUsecase(repo, nil, assets, nil)

	repo.On("FindByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1", OwnerID: "owner-1"}, nil)
	repo.On("Delete", mock.Anything, "l1").Return(nil)

	require.NoError(t, uc.DeleteListing(context.Background(), &user.User{ID: "owner-1"}, "l1"))
	assets.AssertNotCalled(t, "RemoveImages", mock.Anything, mock.Anything)
}

func TestDeleteListingForbiddenForNonOwner(t *testing.T) {
	repo := new(mockListingRepo)
	assets := new(mockAssetCleaner)
	uc := newTestListingUsecase(repo, nil, assets, nil)

	repo.On("FindByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1", OwnerID: "owner-1"}, nil)

	err := uc.DeleteListing(context.Background(), &user.User{ID: "intruder"}, "l1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assets.AssertNotCalled(t, "RemoveImages", mock.Anything, mock.Anything)
}

func TestDeleteListingSurfacesRepositoryError(t *testing.T) {
	repo := new(mockListingRepo)
	uc := newTestListingUsecase(repo, nil, nil, nil)

	repoErr := errors.New("write concern failed")
	repo.On("FindByID", mock.Anything, "l1").Return(&domain.Listing{ID: "l1", OwnerID: "owner-1"}, nil)
	repo.On("Delete", mock.Anything, "l1").Return(repoErr)

	err := uc.DeleteListing(context.Background(), &user.User{ID: "owner-1"}, "l1")
	assert.ErrorIs(t, err, repoErr)
}
