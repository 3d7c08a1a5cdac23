package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/clavel/clavelparts/internal/cart"
	"github.com/clavel/clavelparts/internal/domain"
	"github.com/clavel/clavelparts/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	tmpl      *template.Template
	products  *usecase.ProductUC
	vehicles  *usecase.VehicleUC
	orders    *usecase.OrderUC
	customers domain.CustomerRepo
	snapshots domain.SnapshotStore
	oauthCfg  *oauth2.Config

	adminUser   string
	adminPass   string
	adminSecret []byte
}

func New(t *template.Template, p *usecase.ProductUC, v *usecase.VehicleUC, o *usecase.OrderUC, customers domain.CustomerRepo, snapshots domain.SnapshotStore, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		tmpl:      t,
		products:  p,
		vehicles:  v,
		orders:    o,
		customers: customers,
		snapshots: snapshots,
		oauthCfg:  oauthCfg,
	}

	s.adminUser = os.Getenv("ADMIN_USER")
	if s.adminUser == "" {
		s.adminUser = "admin"
	}
	s.adminPass = os.Getenv("ADMIN_PASS")
	sec := os.Getenv("JWT_ADMIN_SECRET")
	if sec == "" {
		sec = os.Getenv("SECRET_KEY")
	}
	if sec == "" {
		sec = "dev-admin-secret"
	}
	s.adminSecret = []byte(sec)

	s.routes()
	return Chain(s.mux,
		s.RouteGuard,
		RateLimit(120),
		Gzip,
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/public/", http.StripPrefix("/public/", http.FileServer(http.Dir("public"))))

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/catalogo", s.handleCatalogo)
	s.mux.HandleFunc("/producto/", s.handleProducto)

	s.mux.HandleFunc("/carrito", s.handleCarrito)
	s.mux.HandleFunc("/carrito/agregar", s.handleCartAdd)
	s.mux.HandleFunc("/carrito/actualizar", s.handleCartUpdate)
	s.mux.HandleFunc("/carrito/quitar", s.handleCartRemove)
	s.mux.HandleFunc("/carrito/vaciar", s.handleCartClear)

	s.mux.HandleFunc("/checkout", s.handleCheckout)

	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/callback", s.handleAuthCallback)
	s.mux.HandleFunc("/logout", s.handleLogout)

	s.mux.HandleFunc("/theme", s.handleTheme)

	s.mux.HandleFunc("/api/vehicles/brands", s.apiBrands)
	s.mux.HandleFunc("/api/vehicles/models", s.apiModels)
	s.mux.HandleFunc("/api/vehicles/versions", s.apiVersions)

	s.mux.HandleFunc("/admin/productos", s.handleAdminProductos)
	s.mux.HandleFunc("/admin/auth", s.handleAdminAuth)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/admin/export/xlsx", s.handleAdminExportXLSX)
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
}

// protectedPrefixes son las rutas detrás del login. El guard sólo mira la
// presencia de la marca de autenticación, nunca el contenido de la sesión.
var protectedPrefixes = []string{"/mi-garage", "/carrito", "/checkout", "/admin"}

func (s *Server) RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		protected := false
		for _, p := range protectedPrefixes {
			if r.URL.Path == p || strings.HasPrefix(r.URL.Path, p+"/") {
				protected = true
				break
			}
		}
		if !protected {
			next.ServeHTTP(w, r)
			return
		}
		if c, err := r.Cookie(authCookieName); err == nil && c.Value == authCookieValue {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/login?from="+url.QueryEscape(r.URL.Path), http.StatusFound)
	})
}

// --- vidriera ---

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	list, err := s.products.Highlighted(r.Context())
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	s.render(w, r, "home.html", map[string]any{"Products": list})
}

func (s *Server) handleCatalogo(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	f := domain.ProductFilter{
		Category:  domain.Category(qv.Get("category")),
		VersionID: qv.Get("version"),
		Search:    qv.Get("q"),
	}
	list, err := s.products.List(r.Context(), f)
	if err != nil {
		http.Error(w, "err", 500)
		return
	}

	brandID := qv.Get("brand")
	modelID := qv.Get("model")
	brands, _ := s.vehicles.Brands(r.Context())
	models, _ := s.vehicles.Models(r.Context(), brandID)
	versions, _ := s.vehicles.Versions(r.Context(), modelID)

	s.render(w, r, "catalogo.html", map[string]any{
		"Products":   list,
		"Categories": domain.Categories,
		"Brands":     brands,
		"Models":     models,
		"Versions":   versions,
		"Query":      f.Search,
		"Category":   string(f.Category),
		"Brand":      brandID,
		"Model":      modelID,
		"Version":    f.VersionID,
	})
}

func (s *Server) handleProducto(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/producto/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	p, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	added := r.URL.Query().Get("added") == "1"
	s.render(w, r, "producto.html", map[string]any{"Product": p, "Added": added})
}

// --- carrito ---

// cartStore abre el store de la sesión del visitante, hidratado desde el
// snapshot persistido.
func (s *Server) cartStore(w http.ResponseWriter, r *http.Request) *cart.Store {
	sid := s.ensureVisitor(w, r)
	return cart.NewStore(r.Context(), s.snapshots, sid+"/"+domain.SnapshotKeyCart)
}

func (s *Server) handleCarrito(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	st := s.cartStore(w, r).State()
	s.render(w, r, "carrito.html", map[string]any{
		"Items":      st.Items,
		"TotalItems": st.TotalItems(),
		"TotalPrice": st.TotalPrice(),
	})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	id := r.FormValue("id")
	qty, _ := strconv.Atoi(r.FormValue("qty"))
	if qty < 1 {
		qty = 1
	}
	p, err := s.products.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	store := s.cartStore(w, r)
	st := store.AddItem(r.Context(), domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		ImageURL:  p.ImageURL,
	})
	if wantsJSON(r) {
		line, _ := st.Find(p.ID)
		writeJSON(w, 200, map[string]any{
			"status":     "ok",
			"totalItems": st.TotalItems(),
			"quantity":   line.Quantity,
		})
		return
	}
	http.Redirect(w, r, "/producto/"+p.ID+"?added=1", http.StatusFound)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		http.Redirect(w, r, "/carrito", http.StatusFound)
		return
	}
	store := s.cartStore(w, r)
	store.UpdateQuantity(r.Context(), r.FormValue("id"), qty)
	http.Redirect(w, r, "/carrito", http.StatusFound)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	store := s.cartStore(w, r)
	store.RemoveItem(r.Context(), r.FormValue("id"))
	http.Redirect(w, r, "/carrito", http.StatusFound)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	store := s.cartStore(w, r)
	store.Clear(r.Context())
	http.Redirect(w, r, "/carrito", http.StatusFound)
}

// --- checkout ---

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	store := s.cartStore(w, r)
	if r.Method == http.MethodGet {
		st := store.State()
		s.render(w, r, "checkout.html", map[string]any{
			"Items":      st.Items,
			"TotalPrice": st.TotalPrice(),
			"Error":      r.URL.Query().Get("err"),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	conf, err := s.orders.Create(r.Context(), usecase.CreateOrderInput{
		Items:           store.State().Items,
		CustomerName:    r.FormValue("name"),
		CustomerEmail:   r.FormValue("email"),
		CustomerPhone:   r.FormValue("phone"),
		ShippingAddress: r.FormValue("address"),
		Notes:           r.FormValue("notes"),
	})
	if err != nil {
		log.Warn().Err(err).Msg("checkout rechazado")
		http.Redirect(w, r, "/checkout?err=datos", http.StatusFound)
		return
	}
	// el carrito se vacía sólo cuando la orden quedó confirmada
	store.Clear(r.Context())
	s.render(w, r, "confirmacion.html", map[string]any{"Confirmation": conf})
}

// --- tema ---

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "form", 400)
		return
	}
	theme := r.FormValue("theme")
	if theme != "light" && theme != "dark" {
		http.Error(w, "theme", 400)
		return
	}
	sid := s.ensureVisitor(w, r)
	if err := s.snapshots.Put(r.Context(), sid+"/"+domain.SnapshotKeyTheme, []byte(strconv.Quote(theme))); err != nil {
		log.Warn().Err(err).Msg("no se pudo persistir el tema")
	}
	back := r.Header.Get("Referer")
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusFound)
}

func (s *Server) readTheme(r *http.Request) string {
	c, err := r.Cookie(visitorCookieName)
	if err != nil || c.Value == "" {
		return "dark"
	}
	raw, err := s.snapshots.Get(r.Context(), c.Value+"/"+domain.SnapshotKeyTheme)
	if err != nil {
		return "dark"
	}
	theme, err := strconv.Unquote(string(raw))
	if err != nil || (theme != "light" && theme != "dark") {
		return "dark"
	}
	return theme
}

// --- API de taxonomía para el selector de vehículo ---

func (s *Server) apiBrands(w http.ResponseWriter, r *http.Request) {
	list, err := s.vehicles.Brands(r.Context())
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) apiModels(w http.ResponseWriter, r *http.Request) {
	list, err := s.vehicles.Models(r.Context(), r.URL.Query().Get("brand"))
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, list)
}

func (s *Server) apiVersions(w http.ResponseWriter, r *http.Request) {
	list, err := s.vehicles.Versions(r.Context(), r.URL.Query().Get("model"))
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, list)
}

// --- helpers ---

const visitorCookieName = "cp_sid"

// ensureVisitor devuelve el id de sesión del visitante, creándolo si hace
// falta. Es el scope bajo el que se guardan carrito, sesión y tema.
func (s *Server) ensureVisitor(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	sid := newVisitorID()
	http.SetCookie(w, &http.Cookie{
		Name: visitorCookieName, Value: sid, Path: "/",
		MaxAge: 60 * 60 * 24 * 30, HttpOnly: true, SameSite: http.SameSiteLaxMode,
	})
	// el request sigue sin la cookie: dejarla a mano para esta vuelta
	r.AddCookie(&http.Cookie{Name: visitorCookieName, Value: sid})
	return sid
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") == "fetch"
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if _, ok := data["User"]; !ok {
		if u := s.sessionUser(r); u != nil {
			data["User"] = u
		}
	}
	if _, ok := data["Theme"]; !ok {
		data["Theme"] = s.readTheme(r)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", 500)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
