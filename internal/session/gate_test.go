package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavel/clavelparts/internal/adapters/repo/memory"
	"github.com/clavel/clavelparts/internal/domain"
)

type spyMarker struct {
	set, cleared int
}

func (m *spyMarker) Set()   { m.set++ }
func (m *spyMarker) Clear() { m.cleared++ }

type failingStore struct{ domain.SnapshotStore }

func (failingStore) Put(ctx context.Context, key string, value []byte) error {
	return errors.New("disco lleno")
}

func tokenWith(t *testing.T, claims map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return "header." + payload + ".firma"
}

func fullClaims() map[string]any {
	return map[string]any{
		"sub":     "g-123",
		"name":    "Juana Pérez",
		"email":   "juana@example.com",
		"picture": "https://example.com/p.jpg",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func TestApplyIDTokenOK(t *testing.T) {
	kv := memory.NewSnapshotStore()
	marker := &spyMarker{}
	g := NewGate(kv, marker, "s1/"+domain.SnapshotKeyUser)

	u, err := g.ApplyIDToken(context.Background(), tokenWith(t, fullClaims()))
	require.NoError(t, err)
	assert.Equal(t, "g-123", u.ID)
	assert.Equal(t, domain.SessionAuthenticated, g.Status())
	assert.Equal(t, 1, marker.set)

	// el perfil quedó persistido
	raw, err := kv.Get(context.Background(), "s1/"+domain.SnapshotKeyUser)
	require.NoError(t, err)
	var saved domain.User
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, "juana@example.com", saved.Email)
}

func TestApplyIDTokenIlegible(t *testing.T) {
	g := NewGate(memory.NewSnapshotStore(), nil, "")

	for _, tok := range []string{"", "sin-puntos", "a.!!!no-base64.c", "h." + base64.RawURLEncoding.EncodeToString([]byte("no json")) + ".s"} {
		_, err := g.ApplyIDToken(context.Background(), tok)
		assert.ErrorIs(t, err, domain.ErrTokenUnreadable, "token %q", tok)
	}
	assert.Equal(t, domain.SessionPending, g.Status(), "un token ilegible no cambia el estado")
}

func TestApplyIDTokenPerfilIncompleto(t *testing.T) {
	g := NewGate(memory.NewSnapshotStore(), nil, "")

	for _, drop := range []string{"sub", "name", "email"} {
		claims := fullClaims()
		delete(claims, drop)
		_, err := g.ApplyIDToken(context.Background(), tokenWith(t, claims))
		assert.ErrorIs(t, err, domain.ErrIncompleteProfile, "sin %s", drop)
	}
}

func TestApplyIDTokenExpirado(t *testing.T) {
	marker := &spyMarker{}
	g := NewGate(memory.NewSnapshotStore(), marker, "")
	g.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	claims := fullClaims()
	claims["exp"] = time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC).Unix()
	_, err := g.ApplyIDToken(context.Background(), tokenWith(t, claims))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.Equal(t, domain.SessionPending, g.Status())
	assert.Zero(t, marker.set)

	// exp ausente (cero) no se trata como expirado
	delete(claims, "exp")
	_, err = g.ApplyIDToken(context.Background(), tokenWith(t, claims))
	assert.NoError(t, err)
}

func TestApplyIDTokenPersistenciaAtomica(t *testing.T) {
	marker := &spyMarker{}
	g := NewGate(failingStore{memory.NewSnapshotStore()}, marker, "")

	_, err := g.ApplyIDToken(context.Background(), tokenWith(t, fullClaims()))
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	// si no se pudo persistir, no se observa ningún efecto
	assert.Equal(t, domain.SessionPending, g.Status())
	assert.Nil(t, g.User())
	assert.Zero(t, marker.set)
}

func TestResolve(t *testing.T) {
	kv := memory.NewSnapshotStore()
	key := "s1/" + domain.SnapshotKeyUser

	g := NewGate(kv, nil, key)
	g.Resolve(context.Background())
	assert.Equal(t, domain.SessionUnauthenticated, g.Status(), "sin snapshot previo")

	u := domain.User{ID: "g-1", Name: "Ana", Email: "ana@example.com"}
	raw, _ := json.Marshal(u)
	require.NoError(t, kv.Put(context.Background(), key, raw))

	g = NewGate(kv, nil, key)
	g.Resolve(context.Background())
	assert.Equal(t, domain.SessionAuthenticated, g.Status())
	require.NotNil(t, g.User())
	assert.Equal(t, "ana@example.com", g.User().Email)

	// snapshot corrupto equivale a ausente
	require.NoError(t, kv.Put(context.Background(), key, []byte("basura")))
	g = NewGate(kv, nil, key)
	g.Resolve(context.Background())
	assert.Equal(t, domain.SessionUnauthenticated, g.Status())
}

func TestSignOut(t *testing.T) {
	kv := memory.NewSnapshotStore()
	marker := &spyMarker{}
	key := "s1/" + domain.SnapshotKeyUser
	g := NewGate(kv, marker, key)

	_, err := g.ApplyIDToken(context.Background(), tokenWith(t, fullClaims()))
	require.NoError(t, err)

	g.SignOut(context.Background())
	assert.Equal(t, domain.SessionUnauthenticated, g.Status())
	assert.Nil(t, g.User())
	assert.Equal(t, 1, marker.cleared)
	_, err = kv.Get(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
