package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"surveypulse/internal/model"
)

// ResponseRepo reads submitted responses owned by the CRUD layer
type ResponseRepo interface {
	GetBySurvey(ctx context.Context, surveyID string) ([]*model.Response, error)
	CountBySurvey(ctx context.Context, surveyID string) (int64, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("respuestas"),
	}
}

func (r *responseRepo) GetBySurvey(ctx context.Context, surveyID string) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"idEncuesta": model.NormalizeID(surveyID)})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"idEncuesta": model.NormalizeID(surveyID)})
}
