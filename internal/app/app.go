package app

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/clavel/clavelparts/internal/adapters/httpserver"
	"github.com/clavel/clavelparts/internal/adapters/repo/memory"
	"github.com/clavel/clavelparts/internal/adapters/repo/postgres"
	"github.com/clavel/clavelparts/internal/domain"
	"github.com/clavel/clavelparts/internal/usecase"
	"github.com/clavel/clavelparts/internal/views"
)

type App struct {
	DB          *gorm.DB
	Tmpl        *template.Template
	ProductUC   *usecase.ProductUC
	VehicleUC   *usecase.VehicleUC
	OrderUC     *usecase.OrderUC
	Customers   domain.CustomerRepo
	Snapshots   domain.SnapshotStore
	OAuthConfig *oauth2.Config
}

// NewApp arma el grafo de dependencias. Con db nil corre todo en memoria con
// el catálogo de semilla, pensado para desarrollo y tests.
func NewApp(db *gorm.DB) (*App, error) {
	var (
		prodRepo  domain.ProductRepo
		vehRepo   domain.VehicleRepo
		orderRepo domain.OrderRepo
		custRepo  domain.CustomerRepo
		snapshots domain.SnapshotStore
	)
	if db != nil {
		prodRepo = postgres.NewProductRepo(db)
		vehRepo = postgres.NewVehicleRepo(db)
		orderRepo = postgres.NewOrderRepo(db)
		custRepo = postgres.NewCustomerRepo(db)
		snapshots = postgres.NewSnapshotRepo(db)
	} else {
		prodRepo = memory.NewProductRepo(memory.SeedProducts())
		vehRepo = memory.NewVehicleRepo()
		orderRepo = memory.NewOrderRepo()
		custRepo = memory.NewCustomerRepo()
		snapshots = memory.NewSnapshotStore()
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	var oauthCfg *oauth2.Config
	if googleID := os.Getenv("GOOGLE_CLIENT_ID"); googleID != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			// el flujo implícito vuelve al login con el token en el fragmento
			RedirectURL: baseURL + "/login",
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint:    google.Endpoint,
		}
	}

	app := &App{
		DB:          db,
		ProductUC:   &usecase.ProductUC{Products: prodRepo},
		VehicleUC:   &usecase.VehicleUC{Vehicles: vehRepo},
		OrderUC:     &usecase.OrderUC{Orders: orderRepo},
		Customers:   custRepo,
		Snapshots:   snapshots,
		OAuthConfig: oauthCfg,
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"mul": func(a, b float64) float64 { return a * b },
		"subtotal": func(price float64, qty int) float64 {
			return price * float64(qty)
		},
		"ars": func(v float64) string {
			s := fmt.Sprintf("%.0f", v)
			n := len(s)
			neg := false
			if n > 0 && s[0] == '-' {
				neg = true
				s = s[1:]
				n--
			}
			if n <= 3 {
				if neg {
					return "ARS -" + s
				}
				return "ARS " + s
			}
			rem := n % 3
			if rem == 0 {
				rem = 3
			}
			out := s[:rem]
			for i := rem; i < n; i += 3 {
				out += "." + s[i:i+3]
			}
			if neg {
				out = "-" + out
			}
			return "ARS " + out
		},
		"img": func(u string) string {
			s := strings.TrimSpace(u)
			if s == "" {
				return s
			}
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "/") {
				s = "/" + s
			}
			s = strings.ReplaceAll(s, " ", "%20")
			return s
		},
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseGlob("internal/views/*.html")
		if err == nil {
			_, err = tmpl.ParseGlob("internal/views/admin/*.html")
		}
		if err != nil {
			// fuera del árbol del repo cae al bundle embebido
			tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html", "admin/*.html")
		}
	} else {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html", "admin/*.html")
	}
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.ProductUC, a.VehicleUC, a.OrderUC, a.Customers, a.Snapshots, a.OAuthConfig)
}

// MigrateAndSeed crea el esquema y, si el catálogo está vacío, carga la
// semilla inicial.
func (a *App) MigrateAndSeed() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Brand{}, &domain.Model{}, &domain.Version{},
		&domain.Order{}, &domain.OrderItem{}, &domain.Customer{}, &postgres.KVEntry{},
	); err != nil {
		return err
	}

	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		for _, p := range memory.SeedProducts() {
			if err := a.DB.Create(&p).Error; err != nil {
				return err
			}
		}
		for _, b := range memory.SeedBrands() {
			if err := a.DB.Create(&b).Error; err != nil {
				return err
			}
		}
		for _, m := range memory.SeedModels() {
			if err := a.DB.Create(&m).Error; err != nil {
				return err
			}
		}
		for _, v := range memory.SeedVersions() {
			if err := a.DB.Create(&v).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
