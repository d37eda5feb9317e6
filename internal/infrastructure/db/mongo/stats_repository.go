package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// StatsRepository runs the aggregate queries behind the admin reports.
type StatsRepository struct {
	users   *mongo.Collection
	clients *mongo.Collection
	jobs    *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:   db.Collection(usersCollection),
		clients: db.Collection(clientsCollection),
		jobs:    db.Collection(jobsCollection),
	}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, r.users)
}

func (r *StatsRepository) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, r.clients)
}

func (r *StatsRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, r.jobs)
}

func (r *StatsRepository) count(ctx context.Context, coll *mongo.Collection) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return coll.CountDocuments(ctx, bson.M{})
}

func (r *StatsRepository) CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.jobs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs by status: %w", err)
	}
	defer cur.Close(ctx)

	result := make(map[domain.JobStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status row: %w", err)
		}
		result[domain.JobStatus(row.ID)] = row.Count
	}
	return result, cur.Err()
}

func (r *StatsRepository) LastJobs(ctx context.Context, limit int) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.jobs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find last jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var job domain.Job
		if err := cur.Decode(&job); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, cur.Err()
}

// CountJobsByAssignee groups jobs per assignee; jobs without an assignee land
// in the empty-id bucket.
func (r *StatsRepository) CountJobsByAssignee(ctx context.Context) ([]ports.AssigneeJobCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$ifNull": bson.A{"$assigned_to_id", ""}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.jobs.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs by assignee: %w", err)
	}
	defer cur.Close(ctx)

	var rows []ports.AssigneeJobCount
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode assignee row: %w", err)
		}
		rows = append(rows, ports.AssigneeJobCount{UserID: row.ID, Count: row.Count})
	}
	return rows, cur.Err()
}
