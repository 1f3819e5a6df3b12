package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Archive stores crawled page records in MongoDB. With an empty URI it
// degrades to a no-op so crawls run without any database configured.
type Archive struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewArchive connects to MongoDB when uri is non-empty, otherwise returns a
// no-op archive.
func NewArchive(ctx context.Context, uri string) (*Archive, error) {
	if uri == "" {
		logrus.Debug("no MONGODB_URI set, page archive disabled")
		return &Archive{}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	return &Archive{
		client:     client,
		collection: client.Database("webrank").Collection("webpages"),
	}, nil
}

// Enabled reports whether inserts go anywhere.
func (a *Archive) Enabled() bool {
	return a.client != nil
}

// Insert archives one page record. Failures are logged, not returned: the
// archive is best-effort and must never stall a worker.
func (a *Archive) Insert(ctx context.Context, page Webpage) {
	if a.client == nil {
		return
	}
	if _, err := a.collection.InsertOne(ctx, page); err != nil {
		logrus.Warnf("archive insert for %s: %v", page.URL, err)
	}
}

// Close disconnects from MongoDB.
func (a *Archive) Close(ctx context.Context) {
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			logrus.Warnf("archive disconnect: %v", err)
		}
	}
}
