package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rpupo63/hospitality-studio-backend/errs"
	"github.com/rpupo63/hospitality-studio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoGateway stores each collection as a MongoDB collection. ObjectIDs are
// rendered as hex strings before leaving the gateway.
type MongoGateway struct {
	client *mongo.Client
	db     *mongo.Database
	name   string
	logger zerolog.Logger
	now    func() time.Time
}

// OpenMongo creates a client for uri and selects database name. An
// unreachable server is not an error here: the driver keeps reconnecting and
// the health check reports the state.
func OpenMongo(ctx context.Context, uri, name string, timeout time.Duration) (*MongoGateway, error) {
	if name == "" {
		return nil, errs.NewConfigMissingError("DATABASE_NAME")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	g := &MongoGateway{
		client: client,
		db:     client.Database(name),
		name:   name,
		logger: log.With().Str("component", "mongoGateway").Str("database", name).Logger(),
		now:    time.Now,
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		g.logger.Warn().Err(err).Msg("MongoDB not reachable at startup")
	}
	return g, nil
}

func (g *MongoGateway) Insert(ctx context.Context, collection string, record models.Document) (string, error) {
	doc := record.WithTimestamps(g.now())
	delete(doc, models.IDField)

	res, err := g.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		g.logger.Error().Err(err).Str("collection", collection).Msg("insert failed")
		return "", classifyMongoError("insert", collection, err)
	}
	id := renderID(res.InsertedID)
	if id == "" {
		return "", errs.NewWriteFailedError(collection, errors.New("store returned no identifier"))
	}
	return id, nil
}

func (g *MongoGateway) FetchRecent(ctx context.Context, collection string, limit int) ([]models.Document, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: models.IDField, Value: -1}}).
		SetLimit(int64(normalizeLimit(limit)))

	cur, err := g.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		g.logger.Error().Err(err).Str("collection", collection).Msg("fetch failed")
		return nil, classifyMongoError("fetch", collection, err)
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, classifyMongoError("fetch", collection, err)
	}

	docs := make([]models.Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, normalizeDocument(r))
	}
	return docs, nil
}

func (g *MongoGateway) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Backend:      "mongodb",
		Configured:   true,
		DatabaseName: g.name,
		Collections:  []string{},
	}

	if err := g.client.Ping(ctx, readpref.Primary()); err != nil {
		status.ConnectError = errs.Truncate(err.Error(), healthErrorLength)
		return status
	}
	status.Reachable = true

	names, err := g.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		status.CollectionsError = errs.Truncate(err.Error(), healthErrorLength)
		return status
	}
	sort.Strings(names)
	status.CollectionsListed = true
	status.Collections = capCollections(names)
	return status
}

func (g *MongoGateway) Close(ctx context.Context) error {
	return g.client.Disconnect(ctx)
}

func classifyMongoError(operation, collection string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return errs.NewStorageUnavailableError(operation, err)
	}
	return errs.NewDatabaseError(operation, collection, err)
}

func renderID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// normalizeDocument converts driver-native values into plain Go values so
// nothing Mongo-specific escapes the gateway.
func normalizeDocument(m bson.M) models.Document {
	doc := make(models.Document, len(m))
	for k, v := range m {
		doc[k] = normalizeValue(v)
	}
	if id, ok := m[models.IDField]; ok {
		doc[models.IDField] = renderID(id)
	}
	return doc
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case bson.M:
		return map[string]any(normalizeDocument(val))
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
