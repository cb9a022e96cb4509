package repositories

import (
	"context"
	"time"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RevisionRepository defines the interface for the article revision archive
type RevisionRepository interface {
	CreateRevision(ctx context.Context, revision *models.Revision) error
	ListByArticle(ctx context.Context, articleID uint, skip, limit int64) ([]models.Revision, error)
}

// MongoRevisionRepository implements RevisionRepository for MongoDB
type MongoRevisionRepository struct {
	collection *mongo.Collection
}

// NewMongoRevisionRepository creates a new MongoRevisionRepository
func NewMongoRevisionRepository(db *mongo.Database) *MongoRevisionRepository {
	return &MongoRevisionRepository{collection: db.Collection("revisions")}
}

// CreateRevision archives one content snapshot
func (r *MongoRevisionRepository) CreateRevision(ctx context.Context, revision *models.Revision) error {
	revision.ID = primitive.NewObjectID()
	revision.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, revision)
	return err
}

// ListByArticle returns archived snapshots for an article, newest first
func (r *MongoRevisionRepository) ListByArticle(ctx context.Context, articleID uint, skip, limit int64) ([]models.Revision, error) {
	var revisions []models.Revision
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"article_id": articleID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}
