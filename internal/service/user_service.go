package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// --- DTOs ---

type RegisterRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required"`
	EnterpriseID   string `json:"enterprise_id"`   // join an existing enterprise
	EnterpriseName string `json:"enterprise_name"` // or create a new one (enterprise role)
	Industry       string `json:"industry"`
	Country        string `json:"country"`
	PartnerType    string `json:"partner_type"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone,omitempty"`
	Role         string  `json:"role"`
	EnterpriseID *string `json:"enterprise_id,omitempty"`
	Enterprise   string  `json:"enterprise,omitempty"`
	PartnerType  string  `json:"partner_type,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UserService handles registration, credential verification, token
// issuance and user administration. Roles are always explicit; nothing is
// ever inferred from the email address.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, role, enterpriseID string, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	userRepo       repository.UserRepository
	enterpriseRepo repository.EnterpriseRepository
	tokenRepo      repository.RefreshTokenRepository
	txManager      repository.TransactionManager
}

func NewUserService(
	userRepo repository.UserRepository,
	enterpriseRepo repository.EnterpriseRepository,
	tokenRepo repository.RefreshTokenRepository,
	txManager repository.TransactionManager,
) UserService {
	return &userService{
		userRepo:       userRepo,
		enterpriseRepo: enterpriseRepo,
		tokenRepo:      tokenRepo,
		txManager:      txManager,
	}
}

func mapToUserResponse(user *model.User) *UserResponse {
	resp := &UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		PartnerType: user.PartnerType,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
	if user.EnterpriseID != nil {
		s := user.EnterpriseID.String()
		resp.EnterpriseID = &s
	}
	if user.Enterprise != nil {
		resp.Enterprise = user.Enterprise.Name
	}
	return resp
}

// Register creates the user (and, for a new enterprise account, its tenant
// row) in one transaction.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}
	if req.Role == model.RoleFandoroAdmin {
		return nil, errors.New("platform admin accounts cannot be self-registered")
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    string(hashedPassword),
		Role:        req.Role,
		PartnerType: req.PartnerType,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		switch {
		case req.EnterpriseID != "":
			enterprise, txErr := s.enterpriseRepo.GetByID(txCtx, req.EnterpriseID)
			if txErr != nil {
				return errors.New("enterprise not found")
			}
			user.EnterpriseID = &enterprise.ID
		case req.EnterpriseName != "":
			enterprise := &model.Enterprise{
				Name:     req.EnterpriseName,
				Industry: req.Industry,
				Country:  req.Country,
			}
			if txErr := s.enterpriseRepo.Create(txCtx, enterprise); txErr != nil {
				return fmt.Errorf("failed to create enterprise: %w", txErr)
			}
			user.EnterpriseID = &enterprise.ID
		case req.Role == model.RoleEnterprise || req.Role == model.RoleEmployee:
			return errors.New("enterprise_id or enterprise_name is required for this role")
		}

		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return mapToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.Delete(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID.String())
	if err != nil {
		return nil, errors.New("user not found")
	}

	if err := s.tokenRepo.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.Delete(ctx, refreshToken)
}

func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(accessTokenTTL).Unix(),
	}
	if user.EnterpriseID != nil {
		claims["enterprise_id"] = user.EnterpriseID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Same accessor the verification middleware uses, so signing and
	// verification can never disagree on the secret.
	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, refresh); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenResponse{
		Token:        tokenString,
		RefreshToken: refresh.Token,
		User:         *mapToUserResponse(user),
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	return mapToUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, role, enterpriseID string, page, limit int) ([]UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, role, enterpriseID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *mapToUserResponse(&users[i]))
	}
	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, fmt.Errorf("invalid role: %s", req.Role)
		}
		user.Role = req.Role
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return errors.New("user not found")
	}
	return s.userRepo.Delete(ctx, id)
}
