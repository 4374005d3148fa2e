package notification

import (
	"context"
	"sync"
	"testing"

	"rescue-service/internal/emergency"
	"rescue-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTokenRepository struct {
	mu     sync.Mutex
	tokens []*DeviceToken
}

func (f *fakeTokenRepository) Save(ctx context.Context, token *DeviceToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.tokens {
		if existing.Token == token.Token {
			*existing = *token
			return nil
		}
	}
	stored := *token
	f.tokens = append(f.tokens, &stored)
	return nil
}

func (f *fakeTokenRepository) FindTokensByUser(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, t := range f.tokens {
		if t.UserID == userID {
			out = append(out, t.Token)
		}
	}
	return out, nil
}

func (f *fakeTokenRepository) FindTokensByRole(ctx context.Context, role string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, t := range f.tokens {
		if t.UserRole == role {
			out = append(out, t.Token)
		}
	}
	return out, nil
}

func TestRegisterToken(t *testing.T) {
	repo := &fakeTokenRepository{}
	svc := NewNotificationService(repo, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, "responder1", user.RoleResponder, "fcm-token-1"))

	tokens, err := repo.FindTokensByRole(ctx, user.RoleResponder)
	require.NoError(t, err)
	assert.Equal(t, []string{"fcm-token-1"}, tokens)

	tokens, err = repo.FindTokensByUser(ctx, "responder1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fcm-token-1"}, tokens)
}

func TestRegisterTokenValidation(t *testing.T) {
	svc := NewNotificationService(&fakeTokenRepository{}, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	assert.Error(t, svc.RegisterToken(ctx, "responder1", user.RoleResponder, ""))
	assert.Error(t, svc.RegisterToken(ctx, "", user.RoleResponder, "fcm-token-1"))
}

// Re-registering a token moves it between users and refreshes its
// expiry rather than creating a duplicate.
func TestRegisterTokenUpsert(t *testing.T) {
	repo := &fakeTokenRepository{}
	svc := NewNotificationService(repo, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, "userA", user.RolePatient, "fcm-token-1"))
	require.NoError(t, svc.RegisterToken(ctx, "userB", user.RolePatient, "fcm-token-1"))

	tokens, err := repo.FindTokensByUser(ctx, "userA")
	require.NoError(t, err)
	assert.Empty(t, tokens)

	tokens, err = repo.FindTokensByUser(ctx, "userB")
	require.NoError(t, err)
	assert.Equal(t, []string{"fcm-token-1"}, tokens)
}

// Without a Firebase app configured, pushes degrade to logged no-ops
// instead of failing the lifecycle transition.
func TestPushWithoutFirebaseIsNoOp(t *testing.T) {
	repo := &fakeTokenRepository{}
	svc := NewNotificationService(repo, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, svc.RegisterToken(ctx, "responder1", user.RoleResponder, "fcm-token-1"))

	request := &emergency.Request{
		ID:            primitive.NewObjectID(),
		UserID:        "patient1",
		UserName:      "John Patient",
		EmergencyType: "Bleeding",
		Status:        emergency.StatusPending,
	}

	assert.NotPanics(t, func() {
		svc.RequestCreated(ctx, request)
		svc.RequestAccepted(ctx, request)
		svc.RequestCompleted(ctx, request)
		svc.PendingReminder(ctx, request)
	})
}
