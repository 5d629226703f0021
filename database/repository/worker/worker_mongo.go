package workerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicelink/database"
	"servicelink/models"
	"servicelink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates the repository over the "workers" collection.
func NewMongoWorkerRepo() *MongoWorkerRepo {
	repo := &MongoWorkerRepo{coll: database.Collection("workers")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create worker indexes", zap.Error(err))
	}
	return repo
}

// filterDocument translates a WorkerFilter into a Mongo query.
func filterDocument(f WorkerFilter) bson.M {
	filter := bson.M{}
	if f.Skill != "" {
		filter["skills.name"] = f.Skill
	}
	if f.MinRating > 0 {
		filter["rating"] = bson.M{"$gte": f.MinRating}
	}
	if f.VerifiedOnly {
		filter["verifiedWorker"] = true
	}
	return filter
}

func (r *MongoWorkerRepo) GetAll(ctx context.Context) ([]models.WorkerProfile, error) {
	return r.Find(ctx, WorkerFilter{})
}

func (r *MongoWorkerRepo) Find(ctx context.Context, f WorkerFilter) ([]models.WorkerProfile, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filterDocument(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workers: %w", err)
	}
	defer cursor.Close(ctx)

	workers := []models.WorkerProfile{}
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}
	return workers, nil
}

func (r *MongoWorkerRepo) GetByID(ctx context.Context, id string) (*models.WorkerProfile, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var w models.WorkerProfile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&w); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("worker", id)
		}
		return nil, fmt.Errorf("failed to fetch worker with id %s: %w", id, err)
	}
	return &w, nil
}

func (r *MongoWorkerRepo) Upsert(ctx context.Context, worker models.WorkerProfile) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": worker.ID}, worker, opts); err != nil {
		return fmt.Errorf("failed to upsert worker with id %s: %w", worker.ID, err)
	}
	return nil
}

// AddReview pushes the review, then rewrites the rating from the stored review list.
// The average is computed with models.AverageRating so both backends round alike.
func (r *MongoWorkerRepo) AddReview(ctx context.Context, workerID string, review models.Review) (*models.WorkerProfile, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.WorkerProfile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": workerID}, bson.M{"$push": bson.M{"reviews": review}}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFoundError("worker", workerID)
		}
		return nil, fmt.Errorf("failed to add review for worker %s: %w", workerID, err)
	}

	updated.Rating = models.AverageRating(updated.Reviews)
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": workerID}, bson.M{"$set": bson.M{"rating": updated.Rating}}); err != nil {
		return nil, fmt.Errorf("failed to update rating for worker %s: %w", workerID, err)
	}
	return &updated, nil
}

func (r *MongoWorkerRepo) SetVerified(ctx context.Context, workerID string, verified bool) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": workerID}, bson.M{"$set": bson.M{"verifiedWorker": verified}})
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", workerID, err)
	}
	if result.MatchedCount == 0 {
		return utils.NewNotFoundError("worker", workerID)
	}
	return nil
}
