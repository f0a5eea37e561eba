package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

const collectionAuditLogs = "audit_logs"

type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLogs)}
}

// Log appends one audit entry. Entries are immutable once written.
func (r *AuditRepository) Log(ctx context.Context, entry *domain.AuditLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByUser(ctx context.Context, userID string, skip, limit int) ([]*domain.AuditLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*domain.AuditLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	return entries, nil
}
