package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/birdie/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id string) (*models.Tweet, error)
	// GetTweetsByIDs returns the tweets that still exist; unknown or malformed
	// ids are skipped.
	GetTweetsByIDs(ctx context.Context, ids []string) ([]models.Tweet, error)
	// GetAllTweets returns every tweet, newest first.
	GetAllTweets(ctx context.Context) ([]models.Tweet, error)
	// ToggleLike atomically removes the user from the like set if present and
	// adds it otherwise. liked reports the state afterwards.
	ToggleLike(ctx context.Context, tweetID string, userID uint) (tweet *models.Tweet, liked bool, err error)
	DeleteTweet(ctx context.Context, id string) error
}

// MongoTweetRepository implements TweetRepository for MongoDB
type MongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new MongoTweetRepository
func NewMongoTweetRepository(db *mongo.Database) *MongoTweetRepository {
	return &MongoTweetRepository{collection: db.Collection("tweets")}
}

// EnsureIndexes creates the indexes the feed and profile queries rely on.
func (r *MongoTweetRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	return err
}

func (r *MongoTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	now := time.Now().UTC()
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = now
	tweet.UpdatedAt = now
	if tweet.Likes == nil {
		tweet.Likes = []uint{}
	}
	_, err := r.collection.InsertOne(ctx, tweet)
	return err
}

func (r *MongoTweetRepository) GetTweetByID(ctx context.Context, id string) (*models.Tweet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var tweet models.Tweet
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tweet); err != nil {
		return nil, translate(err)
	}
	return &tweet, nil
}

func (r *MongoTweetRepository) GetTweetsByIDs(ctx context.Context, ids []string) ([]models.Tweet, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}
	tweets := []models.Tweet{}
	if len(objIDs) == 0 {
		return tweets, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *MongoTweetRepository) GetAllTweets(ctx context.Context) ([]models.Tweet, error) {
	tweets := []models.Tweet{}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *MongoTweetRepository) ToggleLike(ctx context.Context, tweetID string, userID uint) (*models.Tweet, bool, error) {
	objID, err := primitive.ObjectIDFromHex(tweetID)
	if err != nil {
		return nil, false, ErrNotFound
	}
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// The membership test and the removal happen in one document update, so two
	// concurrent toggles can never both observe the same state.
	var tweet models.Tweet
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		after,
	).Decode(&tweet)
	if err == nil {
		return &tweet, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$set": bson.M{"updated_at": time.Now().UTC()}},
		after,
	).Decode(&tweet)
	if err != nil {
		return nil, false, translate(err)
	}
	return &tweet, true, nil
}

func (r *MongoTweetRepository) DeleteTweet(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
