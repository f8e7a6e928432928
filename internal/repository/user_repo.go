package repository

import (
	"context"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, role string, enterpriseID string, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).Preload("Enterprise").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).Preload("Enterprise").First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, role string, enterpriseID string, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := GetDB(ctx, r.db).Model(&model.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if enterpriseID != "" {
		query = query.Where("enterprise_id = ?", enterpriseID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Enterprise").Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.User{}).Error
}

// EnterpriseRepository defines data access for tenant enterprises
type EnterpriseRepository interface {
	Create(ctx context.Context, enterprise *model.Enterprise) error
	GetByID(ctx context.Context, id string) (*model.Enterprise, error)
	GetByName(ctx context.Context, name string) (*model.Enterprise, error)
	List(ctx context.Context, page, limit int) ([]model.Enterprise, int64, error)
	Update(ctx context.Context, enterprise *model.Enterprise) error
}

type enterpriseRepository struct {
	db *gorm.DB
}

func NewEnterpriseRepository(db *gorm.DB) EnterpriseRepository {
	return &enterpriseRepository{db: db}
}

func (r *enterpriseRepository) Create(ctx context.Context, enterprise *model.Enterprise) error {
	return GetDB(ctx, r.db).Create(enterprise).Error
}

func (r *enterpriseRepository) GetByID(ctx context.Context, id string) (*model.Enterprise, error) {
	var enterprise model.Enterprise
	if err := GetDB(ctx, r.db).First(&enterprise, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (r *enterpriseRepository) GetByName(ctx context.Context, name string) (*model.Enterprise, error) {
	var enterprise model.Enterprise
	if err := GetDB(ctx, r.db).First(&enterprise, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (r *enterpriseRepository) List(ctx context.Context, page, limit int) ([]model.Enterprise, int64, error) {
	var enterprises []model.Enterprise
	var total int64

	if err := GetDB(ctx, r.db).Model(&model.Enterprise{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := GetDB(ctx, r.db).Order("name").Offset(offset).Limit(limit).Find(&enterprises).Error; err != nil {
		return nil, 0, err
	}

	return enterprises, total, nil
}

func (r *enterpriseRepository) Update(ctx context.Context, enterprise *model.Enterprise) error {
	return GetDB(ctx, r.db).Save(enterprise).Error
}

// RefreshTokenRepository stores and rotates long-lived refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before time.Time) error
}

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *refreshTokenRepository) GetByToken(ctx context.Context, token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := GetDB(ctx, r.db).First(&rt, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *refreshTokenRepository) Delete(ctx context.Context, token string) error {
	return GetDB(ctx, r.db).Where("token = ?", token).Delete(&model.RefreshToken{}).Error
}

func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) error {
	return GetDB(ctx, r.db).Where("expires_at < ?", before).Delete(&model.RefreshToken{}).Error
}
