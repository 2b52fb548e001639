package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obakr/qayd-api/internal/domain/entity"
	"github.com/obakr/qayd-api/pkg/pagination"
	"github.com/obakr/qayd-api/pkg/utils"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(userRepo, jwtManager), userRepo
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{
		Name:     "Cashier One",
		Email:    "cashier@qayd.local",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	user, tokens, err := svc.Login(ctx, "cashier@qayd.local", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, user.Role)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, user.LastLogin)

	_, _, err = svc.Login(ctx, "cashier@qayd.local", "wrong")
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, userRepo := newAuthFixture(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &RegisterInput{
		Name:     "Cashier One",
		Email:    "cashier@qayd.local",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, tokens, err := svc.Login(ctx, "cashier@qayd.local", "s3cret-pass")
	require.NoError(t, err)

	// the refresh token identifies the user and buys a fresh pair
	fresh, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)

	// a deactivated user cannot refresh
	userRepo.users[registered.ID].IsActive = false
	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.RefreshToken(context.Background(), "not-a-token")
	require.Error(t, err)
}
