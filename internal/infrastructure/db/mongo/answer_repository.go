package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmsforum/forum/internal/core/domain"
)

const collectionAnswers = "answers"

type AnswerRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{
		col: db.Collection(collectionAnswers),
		seq: newSequence(db, collectionAnswers),
	}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	a.ID = id

	_, err = r.col.InsertOne(ctx, a)
	return err
}

func (r *AnswerRepository) FindByID(ctx context.Context, id int64) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Answer
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnswerRepository) ListByDiscussion(ctx context.Context, discussionID int64) ([]*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		bson.M{"discussionid": discussionID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	answers := make([]*domain.Answer, 0)
	if err := cursor.All(ctx, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}
