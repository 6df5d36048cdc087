package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureForumIndexes creates the secondary indexes used by the backend queries.
func EnsureForumIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	plan := map[string][]mongo.IndexModel{
		collectionAnswers: {
			{Keys: bson.D{{Key: "discussionid", Value: 1}}},
		},
		collectionComments: {
			{Keys: bson.D{{Key: "discussionid", Value: 1}, {Key: "answerid", Value: 1}}},
			{Keys: bson.D{{Key: "answerid", Value: 1}}},
		},
		collectionReports: {
			{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "status", Value: 1}}},
		},
	}
	for name, indexes := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return err
		}
	}
	return nil
}

// EnsureUserIndexes makes usernames unique so concurrent registrations of
// the same name fail with a duplicate key error.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(authCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
