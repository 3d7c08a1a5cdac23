package memory

import (
	"context"
	"sync"

	"github.com/clavel/clavelparts/internal/domain"
)

// SnapshotStore guarda snapshots en un mapa. Es el backend por defecto
// cuando no hay base configurada y el doble de los tests.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{data: map[string][]byte{}}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *SnapshotStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.data[key] = cp
	return nil
}

func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

type memCustomerRepo struct {
	mu    sync.Mutex
	byKey map[string]domain.Customer
}

// NewCustomerRepo es el alta de clientes sin base: suficiente para que el
// login funcione en modo memoria.
func NewCustomerRepo() domain.CustomerRepo {
	return &memCustomerRepo{byKey: map[string]domain.Customer{}}
}

func (r *memCustomerRepo) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byKey[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (r *memCustomerRepo) Save(ctx context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[c.Email] = *c
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]domain.Order
}

func NewOrderRepo() domain.OrderRepo {
	return &memOrderRepo{orders: map[string]domain.Order{}}
}

func (r *memOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID.String()] = *o
	return nil
}

func (r *memOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := o
	return &cp, nil
}
