package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmsforum/forum/internal/core/domain"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{
		col: db.Collection(collectionComments),
		seq: newSequence(db, collectionComments),
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	c.ID = id

	_, err = r.col.InsertOne(ctx, c)
	return err
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByDiscussionAndAnswer returns the oldest comment on answerID.
func (r *CommentRepository) FindByDiscussionAndAnswer(ctx context.Context, discussionID, answerID int64) (*domain.Comment, error) {
	return r.findOne(ctx, bson.M{"discussionid": discussionID, "answerid": answerID})
}

func (r *CommentRepository) ListByDiscussion(ctx context.Context, discussionID int64) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{"discussionid": discussionID})
}

func (r *CommentRepository) ListByAnswer(ctx context.Context, answerID int64) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{"answerid": answerID})
}

func (r *CommentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Comment
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})
	if err := r.col.FindOne(ctx, filter, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := make([]*domain.Comment, 0)
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
