package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	marked   int
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(symbol string, ts time.Time) string {
	return symbol + ts.String()
}

func (d *stubDedup) IsDuplicate(_ context.Context, symbol string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(symbol, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, symbol string, ts time.Time) error {
	d.seen[d.key(symbol, ts)] = true
	d.marked++
	return nil
}

func tickAt(symbol string, price float64, ts time.Time) ports.TickInput {
	return ports.TickInput{Symbol: symbol, Price: price, Timestamp: ts, Source: "test"}
}

func TestTickService_Process_Success(t *testing.T) {
	repo := newStubInstrumentRepo()
	gold := repo.add("Gold", "XAU", 2000)
	history := &stubHistoryRepo{}
	cache := &stubQuoteCache{warm: true}
	svc := NewTickService(repo, history, newStubDedup(), cache, zerolog.Nop())

	ts := time.Now().UTC()
	processed, err := svc.Process(context.Background(), tickAt("XAU", 2050, ts))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if !processed {
		t.Fatalf("expected the tick to be reported as processed")
	}

	if len(history.points) != 1 {
		t.Fatalf("expected one history point, got %d", len(history.points))
	}
	p := history.points[0]
	if p.InstrumentID != gold.ID || p.Price != 2050 || !p.RecordedAt.Equal(ts) {
		t.Fatalf("unexpected point: %+v", p)
	}
	if repo.priceUpdates[gold.ID] != 2050 {
		t.Fatalf("current price not updated: %v", repo.priceUpdates)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation after price update")
	}
}

func TestTickService_Process_DuplicateSkipped(t *testing.T) {
	repo := newStubInstrumentRepo()
	repo.add("Gold", "XAU", 2000)
	history := &stubHistoryRepo{}
	dedup := newStubDedup()
	svc := NewTickService(repo, history, dedup, &stubQuoteCache{}, zerolog.Nop())

	ts := time.Now().UTC()
	tick := tickAt("XAU", 2050, ts)
	if processed, err := svc.Process(context.Background(), tick); err != nil || !processed {
		t.Fatalf("first process failed: processed=%v err=%v", processed, err)
	}
	processed, err := svc.Process(context.Background(), tick)
	if err != nil {
		t.Fatalf("replay must not error: %v", err)
	}
	if processed {
		t.Fatalf("replay must be reported as a skip, not a success")
	}

	if len(history.points) != 1 {
		t.Fatalf("duplicate tick must not write a second point, got %d", len(history.points))
	}
	if dedup.marked != 1 {
		t.Fatalf("expected a single dedup mark, got %d", dedup.marked)
	}
}

func TestTickService_Process_UnknownSymbol(t *testing.T) {
	svc := NewTickService(newStubInstrumentRepo(), &stubHistoryRepo{}, newStubDedup(), &stubQuoteCache{}, zerolog.Nop())

	_, err := svc.Process(context.Background(), tickAt("ZZZ", 1, time.Now()))
	if !errors.Is(err, domain.ErrInstrumentNotFound) {
		t.Fatalf("expected ErrInstrumentNotFound, got %v", err)
	}
}

func TestTickService_Process_DedupCheckFailureProcessesAnyway(t *testing.T) {
	repo := newStubInstrumentRepo()
	repo.add("Gold", "XAU", 2000)
	history := &stubHistoryRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewTickService(repo, history, dedup, &stubQuoteCache{}, zerolog.Nop())

	processed, err := svc.Process(context.Background(), tickAt("XAU", 2100, time.Now()))
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if !processed || len(history.points) != 1 {
		t.Fatalf("expected the tick to be processed despite dedup failure")
	}
}

func TestTickService_Process_InsertFailure(t *testing.T) {
	repo := newStubInstrumentRepo()
	gold := repo.add("Gold", "XAU", 2000)
	history := &stubHistoryRepo{insertErr: errors.New("disk full")}
	svc := NewTickService(repo, history, newStubDedup(), &stubQuoteCache{}, zerolog.Nop())

	if _, err := svc.Process(context.Background(), tickAt("XAU", 2100, time.Now())); err == nil {
		t.Fatalf("expected error when the history write fails")
	}
	if len(repo.priceUpdates) != 0 {
		t.Fatalf("current price must not move when the point was not recorded: %v", repo.priceUpdates[gold.ID])
	}
}
