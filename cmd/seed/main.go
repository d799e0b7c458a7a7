// Command seed provisions the database with the demo data set: an admin and
// a regular user, five instruments, and a per-day random-walk history series
// for each instrument.
package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/infrastructure/config"
	mongodb "github.com/primetradeai/pricetrack/internal/infrastructure/db/mongo"
	"github.com/primetradeai/pricetrack/pkg/logger"
)

const historyDays = 42

var seedInstruments = []struct {
	name   string
	symbol string
	price  float64
}{
	{"Gold", "XAU", 2000},
	{"Silver", "XAG", 25},
	{"Bitcoin", "BTC", 45000},
	{"Ethereum", "ETH", 3000},
	{"Oil", "WTI", 80},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "password123"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongodb.NewUserRepository(db)
	instruments := mongodb.NewInstrumentRepository(db)
	history := mongodb.NewPriceHistoryRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	for _, u := range []domain.User{
		{Username: "admin", Role: domain.RoleAdmin},
		{Username: "user", Role: domain.RoleUser},
	} {
		u.PasswordHash = string(hash)
		u.CreatedAt = now
		u.UpdatedAt = now
		if _, err := users.Create(ctx, &u); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				log.Info().Str("username", u.Username).Msg("user already present, skipping")
				continue
			}
			log.Fatal().Err(err).Str("username", u.Username).Msg("user seeding failed")
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user seeded")
	}

	for _, seed := range seedInstruments {
		instrument, err := instruments.Create(ctx, &domain.Instrument{
			Name:         seed.name,
			Symbol:       seed.symbol,
			CurrentPrice: seed.price,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInstrumentExists) {
				log.Info().Str("symbol", seed.symbol).Msg("instrument already present, skipping")
				continue
			}
			log.Fatal().Err(err).Str("symbol", seed.symbol).Msg("instrument seeding failed")
		}

		last, err := seedHistory(ctx, history, instrument.ID, seed.price, now)
		if err != nil {
			log.Fatal().Err(err).Str("symbol", seed.symbol).Msg("history seeding failed")
		}
		if err := instruments.UpdatePrice(ctx, instrument.ID, last); err != nil {
			log.Fatal().Err(err).Str("symbol", seed.symbol).Msg("current price update failed")
		}
		log.Info().Str("symbol", seed.symbol).Float64("price", last).Msg("instrument seeded")
	}

	log.Info().Msg("seeding complete")
}

// nextPrice applies one random step of at most ±5% to price. The result is
// floored at 1 so a walk never goes non-positive.
func nextPrice(price float64) float64 {
	price += price * (rand.Float64()*0.1 - 0.05)
	if price < 1 {
		price = 1
	}
	return price
}

// seedHistory writes one point per day over historyDays and returns the
// final price of the walk.
func seedHistory(ctx context.Context, history *mongodb.PriceHistoryRepository, instrumentID string, start float64, until time.Time) (float64, error) {
	price := start
	day := until.AddDate(0, 0, -historyDays)

	for !day.After(until) {
		price = nextPrice(price)
		if err := history.Insert(ctx, &domain.PricePoint{
			InstrumentID: instrumentID,
			Price:        price,
			RecordedAt:   day,
		}); err != nil {
			return 0, err
		}
		day = day.AddDate(0, 0, 1)
	}
	return price, nil
}
