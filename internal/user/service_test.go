package user

import (
	"context"
	"sync"
	"testing"

	"rescue-service/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

// fakeUserRepository enforces email uniqueness the same way the mongo
// unique index does.
type fakeUserRepository struct {
	mu    sync.Mutex
	users []*User
}

func (f *fakeUserRepository) Create(ctx context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	stored := *u
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func newTestUserService() UserService {
	return NewUserService(&fakeUserRepository{}, testSecret)
}

func TestSignUp(t *testing.T) {
	svc := newTestUserService()

	resp, err := svc.SignUp(context.Background(), &SignUpRequest{
		Email: "p@x.com",
		Name:  "John Patient",
		Role:  RolePatient,
	})
	require.NoError(t, err)

	assert.False(t, resp.User.ID.IsZero())
	assert.Equal(t, "p@x.com", resp.User.Email)
	assert.Equal(t, RolePatient, resp.User.Role)
	assert.False(t, resp.User.CreatedAt.IsZero())

	// Signing up signs the user in: the token must carry their identity.
	claims, err := auth.ParseToken(resp.Token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), claims.Subject)
	assert.Equal(t, "John Patient", claims.Name)
	assert.Equal(t, RolePatient, claims.Role)
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &SignUpRequest{Name: "X", Role: RolePatient})
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "a@b.com", Role: RolePatient})
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "a@b.com", Name: "X", Role: "admin"})
	assert.Error(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	req := &SignUpRequest{Email: "p@x.com", Name: "John", Role: RolePatient}
	_, err := svc.SignUp(ctx, req)
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, &SignUpRequest{Email: "p@x.com", Name: "Other", Role: RoleResponder})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	created, err := svc.SignUp(ctx, &SignUpRequest{Email: "r@x.com", Name: "Jane", Role: RoleResponder})
	require.NoError(t, err)

	resp, err := svc.SignIn(ctx, &SignInRequest{Email: "r@x.com"})
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestSignInUnknownEmail(t *testing.T) {
	svc := newTestUserService()

	_, err := svc.SignIn(context.Background(), &SignInRequest{Email: "nobody@x.com"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// Email lookup is a case-sensitive exact match.
func TestGetUserByEmailCaseSensitive(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &SignUpRequest{Email: "p@x.com", Name: "John", Role: RolePatient})
	require.NoError(t, err)

	u, err := svc.GetUserByEmail(ctx, "p@x.com")
	require.NoError(t, err)
	assert.Equal(t, "p@x.com", u.Email)

	_, err = svc.GetUserByEmail(ctx, "P@X.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID(t *testing.T) {
	svc := newTestUserService()
	ctx := context.Background()

	created, err := svc.SignUp(ctx, &SignUpRequest{Email: "p@x.com", Name: "John", Role: RolePatient})
	require.NoError(t, err)

	u, err := svc.GetUserByID(ctx, created.User.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.User.Email, u.Email)

	_, err = svc.GetUserByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
