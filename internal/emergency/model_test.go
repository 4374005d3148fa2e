package emergency

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAccepted.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("cancelled").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusAccepted.Terminal())
	assert.True(t, StatusCompleted.Terminal())
}

func TestRequestJSONRoundTrip(t *testing.T) {
	completedAt := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)
	original := Request{
		ID:            primitive.NewObjectID(),
		UserID:        "patient1",
		UserName:      "John Patient",
		EmergencyType: "Bleeding",
		Message:       "cut my hand",
		Location:      Location{Lat: 1.25, Lng: 2.5},
		Status:        StatusCompleted,
		ResponderID:   "responder1",
		ResponderName: "Jane Responder",
		CreatedAt:     time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC),
		CompletedAt:   &completedAt,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Request
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original, decoded)
}
