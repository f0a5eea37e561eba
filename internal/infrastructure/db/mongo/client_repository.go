package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

// Save upserts the client document keyed by entity id.
func (r *ClientRepository) Save(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": client.ID}, client, opts); err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}
	return client, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var client domain.Client
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewEntityNotFound("Client", id)
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &client, nil
}

// List returns a page of clients matching filter and the count of the
// filtered universe. An empty ConsultantID means no tenant filter.
func (r *ClientRepository) List(ctx context.Context, filter ports.ClientSearchFilter) ([]*domain.Client, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.ConsultantID != "" {
		query["consultant_id"] = filter.ConsultantID
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: regexEscape(filter.Query), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"email": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(filter.Skip)).
		SetLimit(int64(filter.Limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer cursor.Close(ctx)

	var clients []*domain.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, fmt.Errorf("decode clients: %w", err)
	}
	return clients, total, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewEntityNotFound("Client", id)
	}
	return nil
}

// EnsureIndexes creates indexes supporting tenant listing and search.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "consultant_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// regexEscape neutralises regex metacharacters in user-supplied search terms.
func regexEscape(s string) string {
	special := `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, sp := range special {
			if r == sp {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}
