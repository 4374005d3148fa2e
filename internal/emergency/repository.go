package emergency

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RequestRepository is the store for emergency requests. All list
// queries return records in creation order. The two transition methods
// are compare-and-set: they match on the expected source status in the
// same operation that writes the new state, so two responders racing to
// accept the same request cannot both win. A transition that matched
// nothing returns (nil, nil); the service decides whether that means
// not-found or a lost race.
type RequestRepository interface {
	Create(ctx context.Context, request *Request) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Request, error)
	FindByRequester(ctx context.Context, userID string) ([]*Request, error)
	FindByStatus(ctx context.Context, status Status) ([]*Request, error)
	FindByResponder(ctx context.Context, responderID string) ([]*Request, error)
	FindActiveByResponder(ctx context.Context, responderID string) ([]*Request, error)
	FindPendingCreatedBetween(ctx context.Context, from, to time.Time) ([]*Request, error)
	AcceptPending(ctx context.Context, id primitive.ObjectID, responderID, responderName string, now time.Time) (*Request, error)
	CompleteAccepted(ctx context.Context, id primitive.ObjectID, now time.Time) (*Request, error)
}

type requestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(collection *mongo.Collection) RequestRepository {
	_ = EnsureRequestIndexes(context.Background(), collection)
	return &requestRepository{
		collection: collection,
	}
}

func (r *requestRepository) Create(ctx context.Context, request *Request) error {

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return err
	}

	return nil
}

func (r *requestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Request, error) {

	var request Request

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func (r *requestRepository) FindByRequester(ctx context.Context, userID string) ([]*Request, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *requestRepository) FindByStatus(ctx context.Context, status Status) ([]*Request, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *requestRepository) FindByResponder(ctx context.Context, responderID string) ([]*Request, error) {
	return r.find(ctx, bson.M{"responder_id": responderID})
}

func (r *requestRepository) FindActiveByResponder(ctx context.Context, responderID string) ([]*Request, error) {
	return r.find(ctx, bson.M{
		"responder_id": responderID,
		"status":       bson.M{"$ne": StatusCompleted},
	})
}

func (r *requestRepository) FindPendingCreatedBetween(ctx context.Context, from, to time.Time) ([]*Request, error) {
	return r.find(ctx, bson.M{
		"status": StatusPending,
		"created_at": bson.M{
			"$gte": from,
			"$lt":  to,
		},
	})
}

func (r *requestRepository) find(ctx context.Context, filter bson.M) ([]*Request, error) {

	var requests []*Request

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &requests)
	if err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *requestRepository) AcceptPending(ctx context.Context, id primitive.ObjectID, responderID, responderName string, now time.Time) (*Request, error) {

	filter := bson.M{
		"_id":    id,
		"status": StatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			"status":         StatusAccepted,
			"responder_id":   responderID,
			"responder_name": responderName,
			"updated_at":     now,
		},
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *requestRepository) CompleteAccepted(ctx context.Context, id primitive.ObjectID, now time.Time) (*Request, error) {

	filter := bson.M{
		"_id":    id,
		"status": StatusAccepted,
	}
	update := bson.M{
		"$set": bson.M{
			"status":       StatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		},
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *requestRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*Request, error) {

	var request Request

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &request, nil
}

func EnsureRequestIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("by_requester_created"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("by_status_created"),
		},
		{
			Keys: bson.D{
				{Key: "responder_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().
				SetName("by_responder_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
