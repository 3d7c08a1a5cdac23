package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/clavel/clavelparts/internal/domain"
	"github.com/clavel/clavelparts/internal/session"
)

const (
	authCookieName  = "clavelparts_auth"
	authCookieValue = "1"
	stateCookieName = "oauth_state"
	returnToCookie  = "return_to"
)

func newVisitorID() string { return uuid.NewString() }

// cookieMarker implementa session.Marker sobre la cookie que mira el
// RouteGuard. Marca presencia, no identidad.
type cookieMarker struct{ w http.ResponseWriter }

func (m cookieMarker) Set() {
	http.SetCookie(m.w, &http.Cookie{
		Name: authCookieName, Value: authCookieValue, Path: "/",
		MaxAge: 60 * 60 * 24 * 30, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

func (m cookieMarker) Clear() {
	http.SetCookie(m.w, &http.Cookie{
		Name: authCookieName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) gate(w http.ResponseWriter, r *http.Request) *session.Gate {
	sid := s.ensureVisitor(w, r)
	return session.NewGate(s.snapshots, cookieMarker{w: w}, sid+"/"+domain.SnapshotKeyUser)
}

// sessionUser resuelve el perfil persistido, si lo hay. Sólo para render:
// la autorización de rutas pasa por el RouteGuard.
func (s *Server) sessionUser(r *http.Request) *domain.User {
	c, err := r.Cookie(authCookieName)
	if err != nil || c.Value != authCookieValue {
		return nil
	}
	sc, err := r.Cookie(visitorCookieName)
	if err != nil || sc.Value == "" {
		return nil
	}
	g := session.NewGate(s.snapshots, nil, sc.Value+"/"+domain.SnapshotKeyUser)
	g.Resolve(r.Context())
	return g.User()
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	s.render(w, r, "login.html", map[string]any{
		"From":  r.URL.Query().Get("from"),
		"Error": oauthErrorMessage(r.URL.Query().Get("oauth_error")),
	})
}

func oauthErrorMessage(code string) string {
	switch code {
	case "":
		return ""
	case "token":
		return "no pudimos leer la respuesta del proveedor de identidad"
	case "perfil":
		return "el perfil recibido está incompleto"
	case "expirado":
		return "la sesión del proveedor ya expiró, probá de nuevo"
	case "persistencia":
		return "no pudimos guardar tu sesión, probá de nuevo"
	case "estado":
		return "la solicitud de login no coincide con la iniciada"
	default:
		return "no se pudo iniciar sesión"
	}
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil || s.oauthCfg.ClientID == "" {
		http.Redirect(w, r, "/login?oauth_error=config", http.StatusFound)
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name: stateCookieName, Value: state, Path: "/",
		MaxAge: 600, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	if from := r.URL.Query().Get("from"); from != "" && strings.HasPrefix(from, "/") {
		http.SetCookie(w, &http.Cookie{
			Name: returnToCookie, Value: from, Path: "/",
			MaxAge: 600, HttpOnly: true, SameSite: http.SameSiteLaxMode,
		})
	}
	// flujo implícito: pedimos el id_token directo, sin canje de código
	authURL := s.oauthCfg.AuthCodeURL(state,
		oauth2.SetAuthURLParam("response_type", "id_token"),
		oauth2.SetAuthURLParam("nonce", uuid.NewString()),
	)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleAuthCallback recibe por POST los parámetros que el proveedor devolvió
// en el fragmento de la URL. El script de la página de login los reenvía acá.
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}

	sc, err := r.Cookie(stateCookieName)
	if err != nil || sc.Value == "" || sc.Value != r.FormValue("state") {
		http.Redirect(w, r, "/login?oauth_error=estado", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	g := s.gate(w, r)
	u, err := g.ApplyIDToken(r.Context(), r.FormValue("id_token"))
	if err != nil {
		log.Warn().Err(err).Msg("login rechazado")
		http.Redirect(w, r, "/login?oauth_error="+authErrorCode(err), http.StatusFound)
		return
	}

	if u != nil {
		cust := domain.Customer{
			ID:      uuid.NewString(),
			Email:   u.Email,
			Name:    u.Name,
			Picture: u.Picture,
		}
		if existing, err := s.customers.FindByEmail(r.Context(), u.Email); err == nil {
			cust.ID = existing.ID
			cust.CreatedAt = existing.CreatedAt
		}
		if err := s.customers.Save(r.Context(), &cust); err != nil {
			log.Warn().Err(err).Msg("no se pudo registrar el cliente")
		}
	}

	dest := "/"
	if c, err := r.Cookie(returnToCookie); err == nil && strings.HasPrefix(c.Value, "/") {
		dest = c.Value
	}
	http.SetCookie(w, &http.Cookie{Name: returnToCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, dest, http.StatusFound)
}

func authErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenUnreadable):
		return "token"
	case errors.Is(err, domain.ErrIncompleteProfile):
		return "perfil"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expirado"
	case errors.Is(err, domain.ErrPersistenceFailed):
		return "persistencia"
	default:
		return "desconocido"
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	g := s.gate(w, r)
	g.SignOut(r.Context())
	http.Redirect(w, r, "/", http.StatusFound)
}

// --- admin: login propio con token HMAC, separado de la sesión de clientes ---

const adminCookieName = "admin_token"

func b64url(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

func (s *Server) issueAdminToken(ttl time.Duration) string {
	header := b64url([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := b64url([]byte(fmt.Sprintf(`{"sub":"%s","exp":%d}`, s.adminUser, time.Now().Add(ttl).Unix())))
	mac := hmac.New(sha256.New, s.adminSecret)
	mac.Write([]byte(header + "." + payload))
	return header + "." + payload + "." + b64url(mac.Sum(nil))
}

func (s *Server) verifyAdminToken(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	mac := hmac.New(sha256.New, s.adminSecret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal([]byte(b64url(mac.Sum(nil))), []byte(parts[2])) {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	var claims struct {
		Sub string `json:"sub"`
		Exp int64  `json:"exp"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return false
	}
	return claims.Sub == s.adminUser && claims.Exp > time.Now().Unix()
}

func (s *Server) isAdmin(r *http.Request) bool {
	c, err := r.Cookie(adminCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return s.verifyAdminToken(c.Value)
}

func (s *Server) handleAdminAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	if s.adminPass == "" || r.FormValue("user") != s.adminUser || r.FormValue("pass") != s.adminPass {
		http.Redirect(w, r, "/admin/productos?err=credenciales", http.StatusFound)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name: adminCookieName, Value: s.issueAdminToken(8 * time.Hour), Path: "/",
		MaxAge: 8 * 60 * 60, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin/productos", http.StatusFound)
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name: adminCookieName, Value: "", Path: "/", MaxAge: -1,
		HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
