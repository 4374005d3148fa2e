package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tokenTTL matches the 30-day expiry the original client put on its
// stored token.
const tokenTTL = 30 * 24 * time.Hour

type TokenRepository interface {
	Save(ctx context.Context, token *DeviceToken) error
	FindTokensByUser(ctx context.Context, userID string) ([]string, error)
	FindTokensByRole(ctx context.Context, role string) ([]string, error)
}

type tokenRepository struct {
	collection *mongo.Collection
}

func NewTokenRepository(collection *mongo.Collection) TokenRepository {
	_ = EnsureTokenIndexes(context.Background(), collection)
	return &tokenRepository{
		collection: collection,
	}
}

// Save upserts by token value, refreshing created_at so the TTL clock
// restarts on every registration.
func (r *tokenRepository) Save(ctx context.Context, token *DeviceToken) error {

	filter := bson.M{"token": token.Token}
	update := bson.M{
		"$set": bson.M{
			"user_id":    token.UserID,
			"user_role":  token.UserRole,
			"created_at": token.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *tokenRepository) FindTokensByUser(ctx context.Context, userID string) ([]string, error) {
	return r.findTokens(ctx, bson.M{"user_id": userID})
}

func (r *tokenRepository) FindTokensByRole(ctx context.Context, role string) ([]string, error) {
	return r.findTokens(ctx, bson.M{"user_role": role})
}

func (r *tokenRepository) findTokens(ctx context.Context, filter bson.M) ([]string, error) {

	var records []*DeviceToken

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &records)
	if err != nil {
		return nil, err
	}

	tokens := make([]string, 0, len(records))
	for _, record := range records {
		if record.Token != "" {
			tokens = append(tokens, record.Token)
		}
	}

	return tokens, nil
}

func EnsureTokenIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "token", Value: 1},
			},
			Options: options.Index().
				SetName("unique_token").
				SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().
				SetName("by_user"),
		},
		{
			Keys: bson.D{
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("token_ttl").
				SetExpireAfterSeconds(int32(tokenTTL / time.Second)),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
