package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/astroconsulta/platform-api/internal/core/domain"
)

const (
	collectionNatalCharts  = "natal_charts"
	collectionTransits     = "transits"
	collectionSolarReturns = "solar_returns"
)

type NatalChartRepository struct {
	col *mongo.Collection
}

func NewNatalChartRepository(db *mongo.Database) *NatalChartRepository {
	return &NatalChartRepository{col: db.Collection(collectionNatalCharts)}
}

func (r *NatalChartRepository) Save(ctx context.Context, chart *domain.NatalChart) (*domain.NatalChart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": chart.ID}, chart, opts); err != nil {
		return nil, fmt.Errorf("save natal chart: %w", err)
	}
	return chart, nil
}

func (r *NatalChartRepository) FindByID(ctx context.Context, id string) (*domain.NatalChart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var chart domain.NatalChart
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&chart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewEntityNotFound("NatalChart", id)
		}
		return nil, fmt.Errorf("find natal chart: %w", err)
	}
	return &chart, nil
}

// FindByClient returns a client's charts newest first.
func (r *NatalChartRepository) FindByClient(ctx context.Context, clientID string, skip, limit int) ([]*domain.NatalChart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "calculated_at", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list natal charts: %w", err)
	}
	defer cursor.Close(ctx)

	var charts []*domain.NatalChart
	if err := cursor.All(ctx, &charts); err != nil {
		return nil, fmt.Errorf("decode natal charts: %w", err)
	}
	return charts, nil
}

func (r *NatalChartRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete natal chart: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewEntityNotFound("NatalChart", id)
	}
	return nil
}

// EnsureIndexes creates the client listing index.
func (r *NatalChartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "calculated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

type TransitRepository struct {
	col *mongo.Collection
}

func NewTransitRepository(db *mongo.Database) *TransitRepository {
	return &TransitRepository{col: db.Collection(collectionTransits)}
}

func (r *TransitRepository) Save(ctx context.Context, transit *domain.Transit) (*domain.Transit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": transit.ID}, transit, opts); err != nil {
		return nil, fmt.Errorf("save transit: %w", err)
	}
	return transit, nil
}

func (r *TransitRepository) FindByID(ctx context.Context, id string) (*domain.Transit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var transit domain.Transit
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&transit); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewEntityNotFound("Transit", id)
		}
		return nil, fmt.Errorf("find transit: %w", err)
	}
	return &transit, nil
}

func (r *TransitRepository) FindByChart(ctx context.Context, natalChartID string, skip, limit int) ([]*domain.Transit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "transit_date", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"natal_chart_id": natalChartID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transits: %w", err)
	}
	defer cursor.Close(ctx)

	var transits []*domain.Transit
	if err := cursor.All(ctx, &transits); err != nil {
		return nil, fmt.Errorf("decode transits: %w", err)
	}
	return transits, nil
}

type SolarReturnRepository struct {
	col *mongo.Collection
}

func NewSolarReturnRepository(db *mongo.Database) *SolarReturnRepository {
	return &SolarReturnRepository{col: db.Collection(collectionSolarReturns)}
}

func (r *SolarReturnRepository) Save(ctx context.Context, sr *domain.SolarReturn) (*domain.SolarReturn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": sr.ID}, sr, opts); err != nil {
		return nil, fmt.Errorf("save solar return: %w", err)
	}
	return sr, nil
}

func (r *SolarReturnRepository) FindByID(ctx context.Context, id string) (*domain.SolarReturn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var sr domain.SolarReturn
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewEntityNotFound("SolarReturn", id)
		}
		return nil, fmt.Errorf("find solar return: %w", err)
	}
	return &sr, nil
}

func (r *SolarReturnRepository) FindByChart(ctx context.Context, natalChartID string, skip, limit int) ([]*domain.SolarReturn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "return_year", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{"natal_chart_id": natalChartID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list solar returns: %w", err)
	}
	defer cursor.Close(ctx)

	var returns []*domain.SolarReturn
	if err := cursor.All(ctx, &returns); err != nil {
		return nil, fmt.Errorf("decode solar returns: %w", err)
	}
	return returns, nil
}
