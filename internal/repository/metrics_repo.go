package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/model"
)

// MetricsRepo handles MongoDB operations for survey metrics snapshots.
// Exactly one current document exists per survey id; Upsert replaces it.
type MetricsRepo interface {
	Upsert(ctx context.Context, surveyID string, record *model.MetricsRecord) error
	GetLatest(ctx context.Context, surveyID string) (*model.MetricsDocument, error)
	GetAll(ctx context.Context) ([]*model.MetricsDocument, error)
}

type metricsRepo struct {
	collection *mongo.Collection
}

// NewMetricsRepo creates a new metrics repository
func NewMetricsRepo(db *mongo.Database) MetricsRepo {
	return &metricsRepo{
		collection: db.Collection("metricas_encuestas"),
	}
}

func (r *metricsRepo) Upsert(ctx context.Context, surveyID string, record *model.MetricsRecord) error {
	surveyID = model.NormalizeID(surveyID)
	now := time.Now()

	update := bson.M{
		"$set": bson.M{
			"idEncuesta":    surveyID,
			"contenido":     record,
			"actualizadaEn": now,
		},
		"$setOnInsert": bson.M{
			"creadaEn": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"idEncuesta": surveyID}, update, opts)
	return err
}

func (r *metricsRepo) GetLatest(ctx context.Context, surveyID string) (*model.MetricsDocument, error) {
	var doc model.MetricsDocument
	err := r.collection.FindOne(ctx, bson.M{"idEncuesta": model.NormalizeID(surveyID)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetAll returns all metrics documents sorted by survey id. The stable
// order matters: the normalizer's rounding is order-dependent.
func (r *metricsRepo) GetAll(ctx context.Context) ([]*model.MetricsDocument, error) {
	opts := options.Find().SetSort(bson.M{"idEncuesta": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.MetricsDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
