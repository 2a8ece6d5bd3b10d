package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kzkiosk/kiosk-control/internal/core/domain"
	"github.com/kzkiosk/kiosk-control/internal/core/ports"
)

const journalCollection = "master_session_events"

// JournalRepository implements ports.JournalRepository using MongoDB.
type JournalRepository struct {
	db *mongo.Database
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db *mongo.Database) ports.JournalRepository {
	return &JournalRepository{db: db}
}

// EnsureJournalIndexes creates the lookup index of the audit collection:
// one master's transitions, newest first.
func EnsureJournalIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(journalCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "master_id", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("master_id_at"),
	})
	if err != nil {
		return fmt.Errorf("journal indexes: %w", err)
	}
	return nil
}

// InsertEvent persists a master session transition to the audit collection.
// Replays of an already written event are ignored.
func (r *JournalRepository) InsertEvent(ctx context.Context, event *domain.SessionEvent) error {
	doc := bson.M{
		"_id":          event.ID,
		"type":         string(event.Type),
		"master_id":    event.MasterID,
		"at":           event.At.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Reason != "" {
		doc["reason"] = string(event.Reason)
	}
	if event.TokenFingerprint != "" {
		doc["token_fp"] = event.TokenFingerprint
	}

	_, err := r.db.Collection(journalCollection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
