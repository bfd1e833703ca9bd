package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/estatehub/listing-service/internal/listing/domain"
	"github.com/estatehub/listing-service/internal/user"
)

const tokenTTL = 7 * 24 * time.Hour

// SummaryInvalidator drops a cached owner summary after a profile change.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

type ProfileUpdate struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
}

type UserUsecase struct {
	repo        user.Repository
	listings    domain.ListingRepository
	invalidator SummaryInvalidator
	jwtSecret   string
	logger      *zap.Logger
}

func NewUserUsecase(repo user.Repository, listings domain.ListingRepository, invalidator SummaryInvalidator, jwtSecret string, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{
		repo:        repo,
		listings:    listings,
		invalidator: invalidator,
		jwtSecret:   jwtSecret,
		logger:      logger,
	}
}

func (uc *UserUsecase) Register(ctx context.Context, name, email, phone, password string, role user.Role) (*user.User, error) {
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Message: "email is required"}
	}
	if len(password) < 8 {
		return nil, &domain.ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	// Admins are provisioned out of band, never through registration.
	if role != user.RoleAgent {
		role = user.RoleStandard
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Password:  string(hash),
		Role:      role,
		Favorites: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a signed bearer token. Wrong email
// and wrong password are indistinguishable to the caller.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (string, error) {
	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", user.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(uc.jwtSecret))
}

func (uc *UserUsecase) GetProfile(ctx context.Context, userID string) (*user.User, error) {
	return uc.repo.FindByID(ctx, userID)
}

func (uc *UserUsecase) UpdateProfile(ctx context.Context, actor *user.User, upd ProfileUpdate) (*user.User, error) {
	u, err := uc.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.ProfileImage != nil {
		u.ProfileImage = *upd.ProfileImage
	}
	u.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	uc.invalidateSummary(ctx, u.ID)
	return u, nil
}

// AddFavorite records a listing on the caller's favorites; adding one that is
// already present is a no-op.
func (uc *UserUsecase) AddFavorite(ctx context.Context, actor *user.User, listingID string) ([]string, error) {
	if _, err := uc.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	u, err := uc.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range u.Favorites {
		if id == listingID {
			return u.Favorites, nil
		}
	}
	u.Favorites = append(u.Favorites, listingID)
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

func (uc *UserUsecase) RemoveFavorite(ctx context.Context, actor *user.User, listingID string) ([]string, error) {
	u, err := uc.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	kept := u.Favorites[:0]
	for _, id := range u.Favorites {
		if id != listingID {
			kept = append(kept, id)
		}
	}
	u.Favorites = kept
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// ListFavorites resolves the caller's favorites to listings; entries whose
// listing has since been deleted are skipped.
func (uc *UserUsecase) ListFavorites(ctx context.Context, actor *user.User) ([]*domain.Listing, error) {
	u, err := uc.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(u.Favorites))
	for _, id := range u.Favorites {
		l, err := uc.listings.FindByID(ctx, id)
		if err != nil {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func (uc *UserUsecase) invalidateSummary(ctx context.Context, userID string) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx, userID); err != nil {
		uc.logger.Warn("failed to invalidate cached owner summary", zap.String("user_id", userID), zap.Error(err))
	}
}
