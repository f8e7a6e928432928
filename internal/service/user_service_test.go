package service

import (
	"context"
	"testing"
	"time"

	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/middleware"
	"github.com/S-FND/fandoro-sustainability-hub-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEnterpriseRepo struct {
	enterprises map[string]*model.Enterprise
}

func (r *fakeEnterpriseRepo) Create(_ context.Context, enterprise *model.Enterprise) error {
	if enterprise.ID == uuid.Nil {
		enterprise.ID = uuid.New()
	}
	r.enterprises[enterprise.ID.String()] = enterprise
	return nil
}

func (r *fakeEnterpriseRepo) GetByID(_ context.Context, id string) (*model.Enterprise, error) {
	if e, ok := r.enterprises[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEnterpriseRepo) GetByName(_ context.Context, name string) (*model.Enterprise, error) {
	for _, e := range r.enterprises {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEnterpriseRepo) List(_ context.Context, _, _ int) ([]model.Enterprise, int64, error) {
	return nil, 0, nil
}

func (r *fakeEnterpriseRepo) Update(_ context.Context, enterprise *model.Enterprise) error {
	r.enterprises[enterprise.ID.String()] = enterprise
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]*model.RefreshToken
}

func (r *fakeTokenRepo) Create(_ context.Context, token *model.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) GetByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context, before time.Time) error {
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.tokens, k)
		}
	}
	return nil
}

type userFixture struct {
	service        UserService
	userRepo       *fakeUserRepo
	enterpriseRepo *fakeEnterpriseRepo
	tokenRepo      *fakeTokenRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	userRepo := &fakeUserRepo{users: map[string]*model.User{}}
	enterpriseRepo := &fakeEnterpriseRepo{enterprises: map[string]*model.Enterprise{}}
	tokenRepo := &fakeTokenRepo{tokens: map[string]*model.RefreshToken{}}

	return &userFixture{
		service:        NewUserService(userRepo, enterpriseRepo, tokenRepo, fakeTxManager{}),
		userRepo:       userRepo,
		enterpriseRepo: enterpriseRepo,
		tokenRepo:      tokenRepo,
	}
}

func TestRegisterCreatesEnterpriseAndUser(t *testing.T) {
	f := newUserFixture(t)

	resp, err := f.service.Register(context.Background(), RegisterRequest{
		Name:           "Priya Founder",
		Email:          "priya@greenco.test",
		Password:       "correct-horse-battery",
		Role:           model.RoleEnterprise,
		EnterpriseName: "GreenCo",
		Industry:       "Manufacturing",
		Country:        "IN",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.Role != model.RoleEnterprise {
		t.Errorf("role = %q, want %q", resp.Role, model.RoleEnterprise)
	}
	if resp.EnterpriseID == nil {
		t.Fatal("no enterprise attached to the new account")
	}
	if len(f.enterpriseRepo.enterprises) != 1 {
		t.Errorf("enterprises created = %d, want 1", len(f.enterpriseRepo.enterprises))
	}
}

func TestRegisterRoleIsExplicitNeverInferred(t *testing.T) {
	f := newUserFixture(t)

	// An auditor-looking email does not grant the auditor role; the role
	// field alone decides.
	resp, err := f.service.Register(context.Background(), RegisterRequest{
		Name:     "Sam",
		Email:    "auditor@fandoro.test",
		Password: "correct-horse-battery",
		Role:     model.RoleInvestor,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Role != model.RoleInvestor {
		t.Errorf("role = %q, want %q", resp.Role, model.RoleInvestor)
	}
}

func TestRegisterRejectsInvalidOrAdminRole(t *testing.T) {
	f := newUserFixture(t)

	if _, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "x@test", Password: "longenough1", Role: "root",
	}); err == nil {
		t.Error("expected error for unknown role")
	}

	if _, err := f.service.Register(context.Background(), RegisterRequest{
		Name: "Y", Email: "y@test", Password: "longenough1", Role: model.RoleFandoroAdmin,
	}); err == nil {
		t.Error("expected error self-registering a platform admin")
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	f := newUserFixture(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	user := &model.User{
		ID:       uuid.New(),
		Name:     "Lena",
		Email:    "lena@acme.test",
		Password: string(hash),
		Role:     model.RoleEnterprise,
	}
	f.userRepo.users[user.ID.String()] = user

	if _, err := f.service.Login(context.Background(), LoginRequest{Email: "lena@acme.test", Password: "wrong"}); err == nil {
		t.Error("expected error for wrong password")
	}

	tokenRes, err := f.service.Login(context.Background(), LoginRequest{Email: "lena@acme.test", Password: "right-password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokenRes.Token == "" || tokenRes.RefreshToken == "" {
		t.Error("login did not issue both tokens")
	}
	if len(f.tokenRepo.tokens) != 1 {
		t.Errorf("stored refresh tokens = %d, want 1", len(f.tokenRepo.tokens))
	}
}

func TestLoginTokenVerifiesWithMiddlewareSecret(t *testing.T) {
	f := newUserFixture(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw-longenough"), bcrypt.MinCost)
	user := &model.User{ID: uuid.New(), Email: "v@acme.test", Password: string(hash), Role: model.RoleEnterprise}
	f.userRepo.users[user.ID.String()] = user

	tokenRes, err := f.service.Login(context.Background(), LoginRequest{Email: "v@acme.test", Password: "pw-longenough"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// The access token must verify with the same secret the auth
	// middleware uses.
	parsed, err := jwt.Parse(tokenRes.Token, func(t *jwt.Token) (interface{}, error) {
		return middleware.GetJWTSecret(), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify with the middleware secret: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if sub, _ := claims["sub"].(string); sub != user.ID.String() {
		t.Errorf("sub claim = %q, want %q", sub, user.ID)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newUserFixture(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw-longenough"), bcrypt.MinCost)
	user := &model.User{ID: uuid.New(), Email: "r@acme.test", Password: string(hash), Role: model.RoleEmployee}
	f.userRepo.users[user.ID.String()] = user

	first, err := f.service.Login(context.Background(), LoginRequest{Email: "r@acme.test", Password: "pw-longenough"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	second, err := f.service.Refresh(context.Background(), first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token is revoked.
	if _, err := f.service.Refresh(context.Background(), first.RefreshToken); err == nil {
		t.Error("expected error reusing a rotated refresh token")
	}
}
