package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/clavel/clavelparts/internal/domain"
)

func (s *Server) handleAdminProductos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	if !s.isAdmin(r) {
		s.render(w, r, "admin_auth.html", map[string]any{
			"Error": r.URL.Query().Get("err") == "credenciales",
		})
		return
	}
	list, err := s.products.List(r.Context(), domain.ProductFilter{})
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	s.render(w, r, "admin_productos.html", map[string]any{
		"Products":   list,
		"Categories": domain.Categories,
	})
}

// --- API JSON de productos, sólo admin ---

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.isAdmin(r) {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no autorizado"})
	return false
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.products.List(r.Context(), domain.ProductFilter{
			Category:  domain.Category(r.URL.Query().Get("category")),
			VersionID: r.URL.Query().Get("version"),
			Search:    r.URL.Query().Get("q"),
		})
		if err != nil {
			writeJSON(w, 500, map[string]string{"error": "no se pudo listar"})
			return
		}
		writeJSON(w, 200, list)
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, 400, map[string]string{"error": "json inválido"})
			return
		}
		if err := s.products.Create(r.Context(), &p); err != nil {
			writeJSON(w, 400, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.GetByID(r.Context(), id)
		if err != nil {
			writeJSON(w, 404, map[string]string{"error": "no existe"})
			return
		}
		writeJSON(w, 200, p)
	case http.MethodPut, http.MethodPatch:
		if !s.requireAdmin(w, r) {
			return
		}
		var patch domain.ProductPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSON(w, 400, map[string]string{"error": "json inválido"})
			return
		}
		p, err := s.products.Update(r.Context(), id, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, 404, map[string]string{"error": "no existe"})
				return
			}
			writeJSON(w, 400, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, 200, p)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.products.Delete(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, 404, map[string]string{"error": "no existe"})
				return
			}
			writeJSON(w, 500, map[string]string{"error": "no se pudo borrar"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method", 405)
	}
}

// handleAdminExportXLSX baja el catálogo completo como planilla.
func (s *Server) handleAdminExportXLSX(w http.ResponseWriter, r *http.Request) {
	if !s.isAdmin(r) {
		http.Redirect(w, r, "/admin/productos", http.StatusFound)
		return
	}
	list, err := s.products.List(r.Context(), domain.ProductFilter{})
	if err != nil {
		http.Error(w, "err", 500)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Catalogo"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Nombre", "Marca", "Categoría", "Precio", "Stock", "Destacado", "Tags", "Compatibilidades"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, p := range list {
		stock := ""
		if p.Stock != nil {
			stock = fmt.Sprintf("%d", *p.Stock)
		}
		compat := make([]string, 0, len(p.Compatibility))
		for _, c := range p.Compatibility {
			compat = append(compat, c.VersionID)
		}
		values := []any{
			p.ID, p.Name, p.BrandLabel, string(p.Category), p.Price,
			stock, p.Highlighted, strings.Join(p.Tags, ", "), strings.Join(compat, ", "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	name := fmt.Sprintf("catalogo-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("export xlsx")
	}
}
