package mongo

import (
	"context"
	"time"

	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/interfaces"
	"github.com/Sinfosecurity/GRC-Sinfosecurity--sub006/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityCollection = "activities"

// ActivityLog stores the audit trail in a MongoDB collection.
type ActivityLog struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ interfaces.ActivityLog = &ActivityLog{}

type Option func(*ActivityLog)

// WithCollection overrides the collection name, used by tests to isolate runs.
func WithCollection(name string) Option {
	return func(l *ActivityLog) {
		l.collection = l.collection.Database().Collection(name)
	}
}

func New(ctx context.Context, uri, database string, opts ...Option) (*ActivityLog, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to ping mongodb")
	}

	l := &ActivityLog{
		client:     client,
		collection: client.Database(database).Collection(activityCollection),
	}
	for _, opt := range opts {
		opt(l)
	}

	if _, err := l.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	}); err != nil {
		_ = client.Disconnect(ctx)
		return nil, goerr.Wrap(err, "failed to create activity index")
	}

	return l, nil
}

func (l *ActivityLog) Record(ctx context.Context, activity *model.Activity) error {
	if activity.ID == "" {
		activity.ID = model.NewID()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now().UTC()
	}

	if _, err := l.collection.InsertOne(ctx, activity); err != nil {
		return goerr.Wrap(err, "failed to insert activity", goerr.V("id", activity.ID))
	}
	return nil
}

func (l *ActivityLog) List(ctx context.Context, filter model.ActivityFilter) ([]*model.Activity, error) {
	query := bson.M{}
	if filter.Kind != "" {
		query["kind"] = filter.Kind
	}
	if filter.ResourceID != "" {
		query["resource_id"] = filter.ResourceID
	}
	if filter.Actor != "" {
		query["actor"] = filter.Actor
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := l.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to find activities")
	}
	defer cursor.Close(ctx)

	result := make([]*model.Activity, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode activities")
	}
	return result, nil
}

func (l *ActivityLog) Close(ctx context.Context) error {
	if err := l.client.Disconnect(ctx); err != nil {
		return goerr.Wrap(err, "failed to disconnect mongodb")
	}
	return nil
}
