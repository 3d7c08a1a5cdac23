// Package session valida el id_token del proveedor de identidad y mantiene
// el estado de sesión: usuario persistido, marca de autenticación para el
// route guard y estado pending/authenticated/unauthenticated.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/clavel/clavelparts/internal/domain"
)

// Marker es la marca booleana que consume el route guard. El gate sólo la
// setea o la limpia, nunca decide leyéndola.
type Marker interface {
	Set()
	Clear()
}

// NopMarker sirve para contextos sin route guard (tests, CLI).
type NopMarker struct{}

func (NopMarker) Set()   {}
func (NopMarker) Clear() {}

type Gate struct {
	snapshots domain.SnapshotStore
	marker    Marker
	key       string
	status    domain.SessionStatus
	user      *domain.User
	now       func() time.Time
}

func NewGate(snapshots domain.SnapshotStore, marker Marker, key string) *Gate {
	if marker == nil {
		marker = NopMarker{}
	}
	if key == "" {
		key = domain.SnapshotKeyUser
	}
	return &Gate{snapshots: snapshots, marker: marker, key: key, status: domain.SessionPending, now: time.Now}
}

func (g *Gate) Status() domain.SessionStatus { return g.status }

func (g *Gate) User() *domain.User { return g.user }

// Resolve fija el estado inicial leyendo el usuario persistido. Se llama una
// sola vez por sesión; una lectura fallida equivale a "ausente", sin retry.
func (g *Gate) Resolve(ctx context.Context) {
	raw, err := g.snapshots.Get(ctx, g.key)
	if err != nil {
		g.status = domain.SessionUnauthenticated
		return
	}
	var u domain.User
	if err := json.Unmarshal(raw, &u); err != nil || !u.Valid() {
		g.status = domain.SessionUnauthenticated
		return
	}
	g.user = &u
	g.status = domain.SessionAuthenticated
}

type idTokenClaims struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Exp     int64  `json:"exp"`
}

// decodeClaims lee el segmento medio del token como JSON en base64url,
// restaurando el padding. No verifica firma: la confianza viene del canal
// (state verificado antes de llegar acá), igual que en el frontend original.
func decodeClaims(token string) (*idTokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, domain.ErrTokenUnreadable
	}
	seg := strings.TrimRight(parts[1], "=")
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, domain.ErrTokenUnreadable
	}
	var c idTokenClaims
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, domain.ErrTokenUnreadable
	}
	return &c, nil
}

// ApplyIDToken valida el token y, si pasa, persiste el usuario, setea la
// marca y pasa la sesión a authenticated. Es atómico: si la persistencia
// falla no se observa ningún cambio de estado.
func (g *Gate) ApplyIDToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return nil, err
	}
	if claims.Sub == "" || claims.Name == "" || claims.Email == "" {
		return nil, domain.ErrIncompleteProfile
	}
	if claims.Exp != 0 && claims.Exp <= g.now().Unix() {
		return nil, domain.ErrTokenExpired
	}

	u := domain.User{ID: claims.Sub, Name: claims.Name, Email: claims.Email, Picture: claims.Picture}
	b, err := json.Marshal(u)
	if err != nil {
		return nil, domain.ErrPersistenceFailed
	}
	if err := g.snapshots.Put(ctx, g.key, b); err != nil {
		return nil, errors.Join(domain.ErrPersistenceFailed, err)
	}

	g.marker.Set()
	g.user = &u
	g.status = domain.SessionAuthenticated
	return &u, nil
}

// SignOut limpia todo incondicionalmente. El borrado en el store es
// best-effort: aunque falle, la marca y el estado en memoria se limpian
// igual.
func (g *Gate) SignOut(ctx context.Context) {
	_ = g.snapshots.Delete(ctx, g.key)
	g.marker.Clear()
	g.user = nil
	g.status = domain.SessionUnauthenticated
}
