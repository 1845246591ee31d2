package analyticsRepo

import (
	"context"
	"fmt"
	"time"

	"clearheadspace/database"
	"clearheadspace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalyticsRepository stores generated weekly reports.
type AnalyticsRepository interface {
	Insert(report *models.AnalyticsReport) error
	GetRecent(limit int64) ([]models.AnalyticsReport, error)
}

// MongoAnalyticsRepo implements AnalyticsRepository using MongoDB.
type MongoAnalyticsRepo struct {
	coll *mongo.Collection
}

// NewMongoAnalyticsRepo creates a new instance of AnalyticsRepository using MongoDB.
func NewMongoAnalyticsRepo() AnalyticsRepository {
	coll := database.Collection("analytics")
	return &MongoAnalyticsRepo{coll: coll}
}

func (r *MongoAnalyticsRepo) Insert(report *models.AnalyticsReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to store analytics report: %w", err)
	}
	return nil
}

func (r *MongoAnalyticsRepo) GetRecent(limit int64) ([]models.AnalyticsReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "generatedAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analytics reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.AnalyticsReport
	for cursor.Next(ctx) {
		var rep models.AnalyticsReport
		if err := cursor.Decode(&rep); err != nil {
			return nil, fmt.Errorf("failed to decode analytics report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return reports, nil
}
