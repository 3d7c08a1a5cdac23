package domain

// User es el perfil mínimo derivado del id_token del proveedor de identidad.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Valid exige los tres campos obligatorios del perfil.
func (u User) Valid() bool {
	return u.ID != "" && u.Name != "" && u.Email != ""
}

type SessionStatus string

const (
	SessionPending         SessionStatus = "pending"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionUnauthenticated SessionStatus = "unauthenticated"
)
