package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Eddi3MS/delivery-bd/internal/usecase"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

var (
	admin    = usecase.Identity{ID: "64b7f0c2a1b2c3d4e5f60001", Role: "ADMIN"}
	customer = usecase.Identity{ID: "64b7f0c2a1b2c3d4e5f60002", Role: "USER"}
	other    = usecase.Identity{ID: "64b7f0c2a1b2c3d4e5f60003", Role: "USER"}
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []usecase.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, ev usecase.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeMedia struct {
	mu        sync.Mutex
	uploaded  []string
	destroyed []string
	err       error
}

func (m *fakeMedia) Upload(_ context.Context, source string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.uploaded = append(m.uploaded, source)
	return "media/" + gofakeit.LetterN(8), nil
}

func (m *fakeMedia) Destroy(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, publicID)
	return nil
}

// plainHasher keeps tests fast; production uses bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }

func (plainHasher) Compare(h, p string) bool {
	return strings.HasPrefix(h, "h:") && strings.TrimPrefix(h, "h:") == p
}

type failingCatalog struct{}

func (failingCatalog) FindProductsByIDs(context.Context, []string) ([]usecase.ProductPrice, error) {
	return nil, errors.New("connection refused")
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func validAddress() usecase.AddressInput {
	return usecase.AddressInput{
		Street:       gofakeit.Street(),
		Number:       gofakeit.StreetNumber(),
		Neighborhood: gofakeit.City(),
	}
}

func kindOf(err error) error {
	var ue *usecase.Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return nil
}
