package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schedulerLockName = "schedulerlocks"

// SchedulerLockDatabase contains the methods to coordinate cron jobs
// across instances so only one node runs a given job per window
type SchedulerLockDatabase interface {
	Acquire(ctx context.Context, job, instanceID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, job, instanceID string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// Acquire takes the named lock if it is free, expired, or already held
// by this instance. A duplicate key error means another instance holds
// it.
func (s *schedulerLockDatabase) Acquire(ctx context.Context, job, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"_id": job,
		"$or": []bson.M{
			{"holder": instanceID},
			{"expiresAt": bson.M{"$lt": now}},
		},
	}
	update := bson.M{"$set": bson.M{
		"holder":    instanceID,
		"expiresAt": now.Add(ttl),
	}}

	_, err := s.db.Collection(schedulerLockName).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *schedulerLockDatabase) Release(ctx context.Context, job, instanceID string) error {
	_, err := s.db.Collection(schedulerLockName).UpdateOne(ctx,
		bson.M{"_id": job, "holder": instanceID},
		bson.M{"$set": bson.M{"expiresAt": time.Now().UTC()}},
	)
	return err
}
