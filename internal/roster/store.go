package roster

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreConfig holds the MongoDB connection settings.
type StoreConfig struct {
	URI        string
	Host       string
	Port       string
	Username   string
	Password   string
	Database   string
	AuthSource string
}

// Snapshot is one persisted weekly scorecard, matching the historical
// performanceRecords documents.
type Snapshot struct {
	ID              string    `bson:"_id" json:"id"`
	StartDate       string    `bson:"startDate" json:"startDate"`
	EndDate         string    `bson:"endDate" json:"endDate"`
	StandupPercent  float64   `bson:"standupRecords" json:"standupRecords"`
	TrackifyPercent float64   `bson:"trackifyRecords" json:"trackifyRecords"`
	Goal            float64   `bson:"goal" json:"goal"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Store wraps the MongoDB collections holding the roster and the weekly
// performance snapshots.
type Store struct {
	client    *mongo.Client
	roster    *mongo.Collection
	snapshots *mongo.Collection
}

const (
	rosterCollection   = "uploadedDataEmployee"
	snapshotCollection = "performanceRecords"
)

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(cfg StoreConfig) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := cfg.URI
	if uri == "" {
		if cfg.Username != "" && cfg.Password != "" {
			userInfo := url.UserPassword(cfg.Username, cfg.Password)
			uri = fmt.Sprintf("mongodb://%s@%s:%s/%s?authSource=%s",
				userInfo.String(), cfg.Host, cfg.Port, cfg.Database, url.QueryEscape(cfg.AuthSource))
		} else {
			uri = fmt.Sprintf("mongodb://%s:%s/%s", cfg.Host, cfg.Port, cfg.Database)
		}
	}

	log.Info().Str("host", cfg.Host).Str("database", cfg.Database).Msg("Connecting to roster store")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to roster store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping roster store: %w", err)
	}

	db := client.Database(cfg.Database)
	snapshots := db.Collection(snapshotCollection)

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
	}
	if _, err := snapshots.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn().Err(err).Msg("Snapshot index creation")
	}

	return &Store{
		client:    client,
		roster:    db.Collection(rosterCollection),
		snapshots: snapshots,
	}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// LoadRoster reads every roster document and normalizes it. The number of
// dropped documents is logged by the normalizer, not returned.
func (s *Store) LoadRoster(ctx context.Context) ([]Employee, error) {
	cursor, err := s.roster.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []map[string]interface{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode roster: %w", err)
	}

	employees, _ := NormalizeRoster(docs)
	return employees, nil
}

// ReplaceRoster atomically swaps the roster for a freshly validated upload:
// the old documents are removed and the new ones inserted.
func (s *Store) ReplaceRoster(ctx context.Context, docs []map[string]interface{}) (int, error) {
	if _, err := s.roster.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("failed to clear roster: %w", err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	inserts := make([]interface{}, len(docs))
	for i, doc := range docs {
		inserts[i] = doc
	}
	res, err := s.roster.InsertMany(ctx, inserts)
	if err != nil {
		return 0, fmt.Errorf("failed to insert roster: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// SaveSnapshot upserts a weekly snapshot keyed by its date range so rerunning
// a week replaces the earlier record instead of duplicating it.
func (s *Store) SaveSnapshot(ctx context.Context, snap Snapshot) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"startDate": snap.StartDate, "endDate": snap.EndDate}
	update := bson.M{
		"$set": bson.M{
			"standupRecords":  snap.StandupPercent,
			"trackifyRecords": snap.TrackifyPercent,
			"goal":            snap.Goal,
			"createdAt":       snap.CreatedAt,
		},
		"$setOnInsert": bson.M{"_id": snap.ID},
	}

	if _, err := s.snapshots.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshots returns the most recent snapshots, newest first.
func (s *Store) LoadSnapshots(ctx context.Context, limit int64) ([]Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := s.snapshots.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snaps []Snapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("failed to decode snapshots: %w", err)
	}
	return snaps, nil
}
