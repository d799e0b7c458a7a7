package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/primetradeai/pricetrack/internal/core/domain"
	"github.com/primetradeai/pricetrack/internal/core/ports"
)

type stubInstrumentRepo struct {
	bySymbol map[string]*domain.Instrument
	byID     map[string]*domain.Instrument
	nextID   int

	listCalls      int
	priceUpdates   map[string]float64
	updatePriceErr error
}

func newStubInstrumentRepo() *stubInstrumentRepo {
	return &stubInstrumentRepo{
		bySymbol:     make(map[string]*domain.Instrument),
		byID:         make(map[string]*domain.Instrument),
		priceUpdates: make(map[string]float64),
	}
}

func (r *stubInstrumentRepo) add(name, symbol string, price float64) *domain.Instrument {
	r.nextID++
	in := &domain.Instrument{ID: name + "-id", Name: name, Symbol: symbol, CurrentPrice: price}
	r.bySymbol[symbol] = in
	r.byID[in.ID] = in
	return in
}

func (r *stubInstrumentRepo) Create(_ context.Context, in *domain.Instrument) (*domain.Instrument, error) {
	if _, exists := r.bySymbol[in.Symbol]; exists {
		return nil, domain.ErrInstrumentExists
	}
	created := r.add(in.Name, in.Symbol, in.CurrentPrice)
	return created, nil
}

func (r *stubInstrumentRepo) FindByID(_ context.Context, id string) (*domain.Instrument, error) {
	if in, ok := r.byID[id]; ok {
		return in, nil
	}
	return nil, domain.ErrInstrumentNotFound
}

func (r *stubInstrumentRepo) FindBySymbol(_ context.Context, symbol string) (*domain.Instrument, error) {
	if in, ok := r.bySymbol[symbol]; ok {
		return in, nil
	}
	return nil, domain.ErrInstrumentNotFound
}

func (r *stubInstrumentRepo) List(_ context.Context) ([]domain.Instrument, error) {
	r.listCalls++
	items := make([]domain.Instrument, 0, len(r.byID))
	for _, in := range r.byID {
		items = append(items, *in)
	}
	return items, nil
}

func (r *stubInstrumentRepo) Update(_ context.Context, in *domain.Instrument) (*domain.Instrument, error) {
	existing, ok := r.byID[in.ID]
	if !ok {
		return nil, domain.ErrInstrumentNotFound
	}
	existing.Name = in.Name
	existing.Symbol = in.Symbol
	existing.CurrentPrice = in.CurrentPrice
	return existing, nil
}

func (r *stubInstrumentRepo) UpdatePrice(_ context.Context, id string, price float64) error {
	if r.updatePriceErr != nil {
		return r.updatePriceErr
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrInstrumentNotFound
	}
	r.priceUpdates[id] = price
	r.byID[id].CurrentPrice = price
	return nil
}

func (r *stubInstrumentRepo) Delete(_ context.Context, id string) error {
	in, ok := r.byID[id]
	if !ok {
		return domain.ErrInstrumentNotFound
	}
	delete(r.byID, id)
	delete(r.bySymbol, in.Symbol)
	return nil
}

type stubHistoryRepo struct {
	points    []domain.PricePoint
	deleted   []string
	insertErr error
}

func (r *stubHistoryRepo) Insert(_ context.Context, p *domain.PricePoint) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.points = append(r.points, *p)
	return nil
}

func (r *stubHistoryRepo) ListByInstrument(_ context.Context, instrumentID string) ([]domain.PricePoint, error) {
	out := make([]domain.PricePoint, 0)
	for _, p := range r.points {
		if p.InstrumentID == instrumentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubHistoryRepo) DeleteByInstrument(_ context.Context, instrumentID string) error {
	r.deleted = append(r.deleted, instrumentID)
	return nil
}

type stubQuoteCache struct {
	items       []domain.Instrument
	warm        bool
	invalidated int
	sets        int
}

func (c *stubQuoteCache) Get(_ context.Context) ([]domain.Instrument, bool, error) {
	return c.items, c.warm, nil
}

func (c *stubQuoteCache) Set(_ context.Context, items []domain.Instrument) error {
	c.items = items
	c.warm = true
	c.sets++
	return nil
}

func (c *stubQuoteCache) Invalidate(_ context.Context) error {
	c.items = nil
	c.warm = false
	c.invalidated++
	return nil
}

func TestInstrumentService_List_CacheHit(t *testing.T) {
	repo := newStubInstrumentRepo()
	cache := &stubQuoteCache{warm: true, items: []domain.Instrument{{ID: "gold-id", Symbol: "XAU"}}}
	svc := NewInstrumentService(repo, &stubHistoryRepo{}, cache, zerolog.Nop())

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "XAU" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if repo.listCalls != 0 {
		t.Fatalf("warm cache must not hit the repository")
	}
}

func TestInstrumentService_List_CacheMissPopulates(t *testing.T) {
	repo := newStubInstrumentRepo()
	repo.add("Gold", "XAU", 2000)
	cache := &stubQuoteCache{}
	svc := NewInstrumentService(repo, &stubHistoryRepo{}, cache, zerolog.Nop())

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one repo read, got %d", repo.listCalls)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill after miss")
	}
}

func TestInstrumentService_Create_Duplicate(t *testing.T) {
	repo := newStubInstrumentRepo()
	repo.add("Gold", "XAU", 2000)
	svc := NewInstrumentService(repo, &stubHistoryRepo{}, &stubQuoteCache{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.InstrumentInput{Name: "Gold", Symbol: "XAU", CurrentPrice: 2000})
	if !errors.Is(err, domain.ErrInstrumentExists) {
		t.Fatalf("expected ErrInstrumentExists, got %v", err)
	}
}

func TestInstrumentService_Create_InvalidatesCache(t *testing.T) {
	cache := &stubQuoteCache{warm: true}
	svc := NewInstrumentService(newStubInstrumentRepo(), &stubHistoryRepo{}, cache, zerolog.Nop())

	created, err := svc.Create(context.Background(), ports.InstrumentInput{Name: "Gold", Symbol: "XAU", CurrentPrice: 2000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned ID")
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation on create")
	}
}

func TestInstrumentService_Update_NotFound(t *testing.T) {
	svc := NewInstrumentService(newStubInstrumentRepo(), &stubHistoryRepo{}, &stubQuoteCache{}, zerolog.Nop())

	_, err := svc.Update(context.Background(), "missing", ports.InstrumentInput{Name: "Gold", Symbol: "XAU", CurrentPrice: 1})
	if !errors.Is(err, domain.ErrInstrumentNotFound) {
		t.Fatalf("expected ErrInstrumentNotFound, got %v", err)
	}
}

func TestInstrumentService_Delete_RemovesHistory(t *testing.T) {
	repo := newStubInstrumentRepo()
	gold := repo.add("Gold", "XAU", 2000)
	history := &stubHistoryRepo{}
	cache := &stubQuoteCache{warm: true}
	svc := NewInstrumentService(repo, history, cache, zerolog.Nop())

	if err := svc.Delete(context.Background(), gold.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(history.deleted) != 1 || history.deleted[0] != gold.ID {
		t.Fatalf("expected history cleanup for %s, got %v", gold.ID, history.deleted)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation on delete")
	}
}

func TestInstrumentService_History_UnknownInstrument(t *testing.T) {
	svc := NewInstrumentService(newStubInstrumentRepo(), &stubHistoryRepo{}, &stubQuoteCache{}, zerolog.Nop())

	_, err := svc.History(context.Background(), "missing")
	if !errors.Is(err, domain.ErrInstrumentNotFound) {
		t.Fatalf("expected ErrInstrumentNotFound, got %v", err)
	}
}
