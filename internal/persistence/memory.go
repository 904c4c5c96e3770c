package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"invsettle/pkg/contracts/domain"
)

// MemoryStore keeps persons, settlement invoices and line items in memory.
// It backs dry runs, where the full batch executes without a database and
// the results are only reported.
type MemoryStore struct {
	mu       sync.Mutex
	persons  map[string]domain.PersonRef
	invoices []domain.SettlementInvoice
	items    []domain.LineItem
	nextID   uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		persons: make(map[string]domain.PersonRef),
		nextID:  1,
	}
}

// ResolvePerson fetches or creates a person by exact name.
func (m *MemoryStore) ResolvePerson(_ context.Context, name string) (domain.PersonRef, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ref, ok := m.persons[name]; ok {
		return ref, false, nil
	}

	ref := domain.PersonRef{ID: m.nextID, Name: name}
	m.nextID++
	m.persons[name] = ref
	return ref, true, nil
}

// CreateInvoice allocates one new settlement invoice identity.
func (m *MemoryStore) CreateInvoice(_ context.Context) (domain.SettlementInvoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	invoice := domain.SettlementInvoice{
		ID:        m.nextID,
		Reference: uuid.NewString(),
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.invoices = append(m.invoices, invoice)
	return invoice, nil
}

// BulkInsertItems stores all line items of a batch run.
func (m *MemoryStore) BulkInsertItems(_ context.Context, items []domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range items {
		item.ID = m.nextID
		m.nextID++
		m.items = append(m.items, item)
	}
	return nil
}

// Items returns a copy of every stored line item in insertion order.
func (m *MemoryStore) Items() []domain.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// Invoices returns a copy of every allocated settlement invoice.
func (m *MemoryStore) Invoices() []domain.SettlementInvoice {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.SettlementInvoice, len(m.invoices))
	copy(out, m.invoices)
	return out
}
