package repository

import (
	"context"
	"fmt"
	"time"

	"feedbackhub/internal/app/feedback/entity"
	"feedbackhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// feedbackDocument is the MongoDB shape of a feedback record. The entity
// keeps an opaque string id, so the ObjectID stays internal to this package.
type feedbackDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ProductID    string             `bson:"product_id"`
	Rating       int                `bson:"rating"`
	ReviewText   string             `bson:"review_text"`
	CustomerName string             `bson:"customer_name"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *feedbackDocument) toEntity() entity.Feedback {
	return entity.Feedback{
		ID:           d.ID.Hex(),
		ProductID:    d.ProductID,
		Rating:       d.Rating,
		ReviewText:   d.ReviewText,
		CustomerName: d.CustomerName,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates the MongoDB-backed feedback repository and
// ensures the created_at index used by the ordered listing.
func NewMongoRepository(db *mongo.Database) FeedbackRepository {
	collection := db.Collection("feedback")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// The index may already exist; keep going either way.
		logger.Warn().Err(err).Msg("Failed to create index on created_at")
	}

	return &mongoRepository{
		collection: collection,
	}
}

func (r *mongoRepository) Create(ctx context.Context, fb *entity.Feedback) error {
	fb.CreatedAt = time.Now().UTC()

	doc := feedbackDocument{
		ProductID:    fb.ProductID,
		Rating:       fb.Rating,
		ReviewText:   fb.ReviewText,
		CustomerName: fb.CustomerName,
		CreatedAt:    fb.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		fb.ID = oid.Hex()
	}

	return nil
}

func (r *mongoRepository) GetAll(ctx context.Context) ([]entity.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode feedback: %w", err)
	}

	feedback := make([]entity.Feedback, 0, len(docs))
	for i := range docs {
		feedback = append(feedback, docs[i].toEntity())
	}

	return feedback, nil
}

func (r *mongoRepository) ValidateID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return ErrInvalidFeedbackID
	}
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, fields entity.FeedbackUpdate) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidFeedbackID
	}

	set := bson.M{}
	if fields.Rating != nil {
		set["rating"] = *fields.Rating
	}
	if fields.ReviewText != nil {
		set["review_text"] = *fields.ReviewText
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidFeedbackID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
