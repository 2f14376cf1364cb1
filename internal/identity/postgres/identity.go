package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/skillbridge/skillbridge/internal"
	userDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/user"
	"github.com/skillbridge/skillbridge/internal/identity"
	"gorm.io/gorm"
)

// UserRepository implements the identity.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) identity.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*identity.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return identity.FromDataModel(&u), nil
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*identity.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return identity.FromDataModel(&u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*identity.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("lower(email) = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return identity.FromDataModel(&u), nil
}

// LinkExternalID writes the external identity onto a provisioned record.
// The condition makes the write idempotent: linking the same identity twice
// is a no-op, and a record already linked to a different identity is left
// untouched.
func (r *UserRepository) LinkExternalID(ctx context.Context, userID, externalID string) (*identity.User, error) {
	err := r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Where("id = ? AND (external_id IS NULL OR external_id = ?)", userID, externalID).
		Updates(map[string]interface{}{
			"external_id": externalID,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}
