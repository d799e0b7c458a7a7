package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

const collectionPriceHistory = "price_history"

type PriceHistoryRepository struct {
	col *mongo.Collection
}

func NewPriceHistoryRepository(db *mongo.Database) *PriceHistoryRepository {
	return &PriceHistoryRepository{col: db.Collection(collectionPriceHistory)}
}

type mongoPricePoint struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	InstrumentID string             `bson:"instrument_id"`
	Price        float64            `bson:"price"`
	RecordedAt   time.Time          `bson:"recorded_at"`
}

func (r *PriceHistoryRepository) Insert(ctx context.Context, p *domain.PricePoint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoPricePoint{
		InstrumentID: p.InstrumentID,
		Price:        p.Price,
		RecordedAt:   p.RecordedAt,
	})
	return err
}

// ListByInstrument returns the series sorted by recorded_at ascending.
func (r *PriceHistoryRepository) ListByInstrument(ctx context.Context, instrumentID string) ([]domain.PricePoint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"instrument_id": instrumentID},
		options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	points := make([]domain.PricePoint, 0)
	for cur.Next(ctx) {
		var m mongoPricePoint
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		points = append(points, domain.PricePoint{
			ID:           m.ID.Hex(),
			InstrumentID: m.InstrumentID,
			Price:        m.Price,
			RecordedAt:   m.RecordedAt,
		})
	}
	return points, cur.Err()
}

func (r *PriceHistoryRepository) DeleteByInstrument(ctx context.Context, instrumentID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"instrument_id": instrumentID})
	return err
}

// EnsureIndexes creates the compound index used by the history queries.
func (r *PriceHistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "instrument_id", Value: 1}, {Key: "recorded_at", Value: 1}},
	})
	return err
}
