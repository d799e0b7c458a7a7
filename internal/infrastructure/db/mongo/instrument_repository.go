package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primetradeai/pricetrack/internal/core/domain"
)

const collectionInstruments = "instruments"

type InstrumentRepository struct {
	col *mongo.Collection
}

func NewInstrumentRepository(db *mongo.Database) *InstrumentRepository {
	return &InstrumentRepository{col: db.Collection(collectionInstruments)}
}

type mongoInstrument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Symbol       string             `bson:"symbol"`
	CurrentPrice float64            `bson:"current_price"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m mongoInstrument) toDomain() domain.Instrument {
	return domain.Instrument{
		ID:           m.ID.Hex(),
		Name:         m.Name,
		Symbol:       m.Symbol,
		CurrentPrice: m.CurrentPrice,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *InstrumentRepository) Create(ctx context.Context, in *domain.Instrument) (*domain.Instrument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoInstrument{
		Name:         in.Name,
		Symbol:       in.Symbol,
		CurrentPrice: in.CurrentPrice,
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrInstrumentExists
		}
		return nil, err
	}

	created := *in
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *InstrumentRepository) FindByID(ctx context.Context, id string) (*domain.Instrument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInstrumentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *InstrumentRepository) FindBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error) {
	return r.findOne(ctx, bson.M{"symbol": symbol})
}

func (r *InstrumentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Instrument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoInstrument
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInstrumentNotFound
		}
		return nil, err
	}
	out := m.toDomain()
	return &out, nil
}

// List returns all instruments sorted by name.
func (r *InstrumentRepository) List(ctx context.Context) ([]domain.Instrument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]domain.Instrument, 0)
	for cur.Next(ctx) {
		var m mongoInstrument
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		items = append(items, m.toDomain())
	}
	return items, cur.Err()
}

func (r *InstrumentRepository) Update(ctx context.Context, in *domain.Instrument) (*domain.Instrument, error) {
	oid, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return nil, domain.ErrInstrumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          in.Name,
		"symbol":        in.Symbol,
		"current_price": in.CurrentPrice,
		"updated_at":    in.UpdatedAt,
	}}

	var m mongoInstrument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInstrumentNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrInstrumentExists
		}
		return nil, err
	}
	out := m.toDomain()
	return &out, nil
}

// UpdatePrice sets current_price and updated_at without touching other fields.
func (r *InstrumentRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInstrumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"current_price": price,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrInstrumentNotFound
	}
	return nil
}

func (r *InstrumentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInstrumentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrInstrumentNotFound
	}
	return nil
}

// EnsureIndexes creates the unique symbol index.
func (r *InstrumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "symbol", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
