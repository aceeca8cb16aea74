package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"istore-api/internal/adapters/persistence/models"
	"istore-api/internal/config"
	"istore-api/internal/core/domain"

	"gorm.io/gorm"
)

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[uint]*models.RefreshToken{}, nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	r.tokens[token.ID] = token
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			return token, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) GetByUserID(ctx context.Context, userID uint) ([]*models.RefreshToken, error) {
	var out []*models.RefreshToken
	for _, token := range r.tokens {
		if token.UserID == userID {
			out = append(out, token)
		}
	}
	return out, nil
}

func (r *fakeRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	token, err := r.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	return r.Revoke(ctx, token.ID)
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Loyalty: testLoyaltyConfig(),
	}
}

func newAuthService() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	users := &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
	tokens := newFakeRefreshTokenRepo()
	return NewAuthService(users, tokens, authTestConfig()), users, tokens
}

func TestRegisterCreatesBaseTierAccount(t *testing.T) {
	svc, _, _ := newAuthService()

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Email: "new@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.User.Rank != string(domain.RankSilver) || resp.User.Points != 0 {
		t.Errorf("new account should start at Silver with 0 points: %+v", resp.User)
	}
	if resp.User.Role != string(domain.RoleUser) {
		t.Errorf("expected role USER, got %s", resp.User.Role)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("registration should issue a token pair")
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued access token should validate: %v", err)
	}
	if claims.UserID != resp.User.ID || claims.Email != "new@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	input := &RegisterInput{Email: "dup@example.com", Password: "password123"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthService()
	if _, err := svc.Register(context.Background(), &RegisterInput{
		Email: "user@example.com", Password: "password123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{
		Email: "user@example.com", Password: "password123",
	}); err != nil {
		t.Errorf("Login failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{
		Email: "user@example.com", Password: "wrong-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Login(context.Background(), &LoginInput{
		Email: "nobody@example.com", Password: "password123",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email should look like bad credentials, got %v", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _, _ := newAuthService()
	registered, err := svc.Register(context.Background(), &RegisterInput{
		Email: "user@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	refreshed, err := svc.RefreshToken(context.Background(), registered.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.RefreshToken == registered.RefreshToken {
		t.Error("rotation should issue a new refresh token")
	}

	// The rotated-out token must be dead
	if _, err := svc.RefreshToken(context.Background(), registered.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected ErrTokenRevoked on replay, got %v", err)
	}

	// The fresh one still works
	if _, err := svc.RefreshToken(context.Background(), refreshed.RefreshToken); err != nil {
		t.Errorf("fresh refresh token should work: %v", err)
	}
}

func TestRefreshTokenGarbage(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.RefreshToken(context.Background(), "not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newAuthService()
	registered, err := svc.Register(context.Background(), &RegisterInput{
		Email: "user@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), registered.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.RefreshToken(context.Background(), registered.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("expected ErrTokenRevoked after logout, got %v", err)
	}
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	svc, _, _ := newAuthService()
	registered, err := svc.Register(context.Background(), &RegisterInput{
		Email: "user@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	login, err := svc.Login(context.Background(), &LoginInput{
		Email: "user@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.LogoutAll(context.Background(), registered.User.ID); err != nil {
		t.Fatalf("LogoutAll failed: %v", err)
	}
	for _, token := range []string{registered.RefreshToken, login.RefreshToken} {
		if _, err := svc.RefreshToken(context.Background(), token); !errors.Is(err, ErrTokenRevoked) {
			t.Errorf("expected ErrTokenRevoked, got %v", err)
		}
	}
}
