package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/clavel/clavelparts/internal/domain"
)

// Store es el dueño del estado del carrito dentro de una sesión. No es
// seguro para uso concurrente: cada sesión tiene un único escritor lógico y
// la persistencia es last-write-wins.
type Store struct {
	snapshots domain.SnapshotStore
	key       string
	state     domain.CartState
	subs      []func(domain.CartState)
}

// NewStore crea el store e hidrata desde el snapshot persistido si existe.
// Un snapshot malformado se descarta entero: el estado queda vacío, nunca
// aplicado a medias.
func NewStore(ctx context.Context, snapshots domain.SnapshotStore, key string) *Store {
	s := &Store{snapshots: snapshots, key: key}
	raw, err := snapshots.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("no se pudo leer snapshot de carrito")
		}
		return s
	}
	var snap domain.CartState
	if err := json.Unmarshal(raw, &snap); err != nil {
		return s
	}
	for _, it := range snap.Items {
		if it.ProductID == "" || it.Quantity < 1 {
			return s
		}
	}
	s.state = Reduce(s.state, Hydrate(snap))
	return s
}

func (s *Store) State() domain.CartState { return s.state }

func (s *Store) TotalItems() int { return s.state.TotalItems() }

func (s *Store) TotalPrice() float64 { return s.state.TotalPrice() }

// Subscribe registra un observador que recibe cada estado nuevo.
func (s *Store) Subscribe(fn func(domain.CartState)) {
	s.subs = append(s.subs, fn)
}

// Dispatch corre el reducer, persiste el snapshot resultante y notifica.
// La persistencia es best-effort: el carrito no define condiciones de error.
func (s *Store) Dispatch(ctx context.Context, a Action) domain.CartState {
	s.state = Reduce(s.state, a)
	b, _ := json.Marshal(s.state)
	if err := s.snapshots.Put(ctx, s.key, b); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("no se pudo persistir snapshot de carrito")
	}
	for _, fn := range s.subs {
		fn(s.state)
	}
	return s.state
}

func (s *Store) AddItem(ctx context.Context, line domain.CartLine) domain.CartState {
	if line.ProductID == "" || line.Quantity < 1 {
		return s.state
	}
	return s.Dispatch(ctx, AddItem(line))
}

func (s *Store) RemoveItem(ctx context.Context, productID string) domain.CartState {
	return s.Dispatch(ctx, RemoveItem(productID))
}

func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) domain.CartState {
	return s.Dispatch(ctx, UpdateQuantity(productID, quantity))
}

func (s *Store) Clear(ctx context.Context) domain.CartState {
	return s.Dispatch(ctx, Clear())
}
