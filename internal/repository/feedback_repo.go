package repository

import (
	"context"
	"fmt"
	"time"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const feedbackCollection = "feedbacks"

type feedbackDocument struct {
	ID                 bson.ObjectID `bson:"_id,omitempty"`
	Rating             int           `bson:"rating"`
	Review             string        `bson:"review"`
	UserResponse       string        `bson:"userResponse"`
	Summary            string        `bson:"summary"`
	RecommendedActions []string      `bson:"recommendedActions"`
	Timestamp          time.Time     `bson:"timestamp"`
	Status             string        `bson:"status"`
}

func (d feedbackDocument) toModel() models.FeedbackRecord {
	return models.FeedbackRecord{
		ID:                 d.ID.Hex(),
		Rating:             d.Rating,
		Review:             d.Review,
		UserResponse:       d.UserResponse,
		Summary:            d.Summary,
		RecommendedActions: d.RecommendedActions,
		Timestamp:          d.Timestamp.UTC(),
		Status:             models.Status(d.Status),
	}
}

// FeedbackRepo stores feedback records in MongoDB.
type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(collection *mongo.Collection) *FeedbackRepo {
	return &FeedbackRepo{collection: collection}
}

// Insert persists record and assigns its ID.
func (r *FeedbackRepo) Insert(ctx context.Context, record *models.FeedbackRecord) error {
	doc := feedbackDocument{
		Rating:             record.Rating,
		Review:             record.Review,
		UserResponse:       record.UserResponse,
		Summary:            record.Summary,
		RecommendedActions: record.RecommendedActions,
		Timestamp:          record.Timestamp,
		Status:             string(record.Status),
	}
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("insert feedback: unexpected id type %T", result.InsertedID)
	}
	record.ID = id.Hex()
	return nil
}

// FindRecent returns up to limit records, newest first.
func (r *FeedbackRepo) FindRecent(ctx context.Context, limit int) ([]models.FeedbackRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}

	records := make([]models.FeedbackRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.toModel())
	}
	return records, nil
}

func (r *FeedbackRepo) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return count, nil
}

// CountSince counts records with timestamp >= since.
func (r *FeedbackRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"timestamp": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("count recent feedback: %w", err)
	}
	return count, nil
}

// RatingDistribution groups records by rating.
func (r *FeedbackRepo) RatingDistribution(ctx context.Context) (map[int]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rating"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating distribution: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode rating distribution: %w", err)
	}

	dist := make(map[int]int64, len(rows))
	for _, row := range rows {
		dist[row.Rating] = row.Count
	}
	return dist, nil
}

// AverageRating returns the mean rating, or 0 for an empty collection.
func (r *FeedbackRepo) AverageRating(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("aggregate average rating: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AvgRating float64 `bson:"avgRating"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode average rating: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].AvgRating, nil
}

// Ping checks connectivity through the collection's client.
func (r *FeedbackRepo) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the indexes listing and stats rely on.
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "rating", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
