package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmsforum/forum/internal/core/domain"
)

const collectionDiscussions = "discussions"

type DiscussionRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewDiscussionRepository(db *mongo.Database) *DiscussionRepository {
	return &DiscussionRepository{
		col: db.Collection(collectionDiscussions),
		seq: newSequence(db, collectionDiscussions),
	}
}

// Create assigns the next discussion id and inserts the document.
func (r *DiscussionRepository) Create(ctx context.Context, d *domain.Discussion) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	d.ID = id

	_, err = r.col.InsertOne(ctx, d)
	return err
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id int64) (*domain.Discussion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Discussion
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDiscussionNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns every discussion, oldest first.
func (r *DiscussionRepository) List(ctx context.Context) ([]*domain.Discussion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	discussions := make([]*domain.Discussion, 0)
	if err := cursor.All(ctx, &discussions); err != nil {
		return nil, err
	}
	return discussions, nil
}
