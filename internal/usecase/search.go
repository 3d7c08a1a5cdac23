package usecase

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/clavel/clavelparts/internal/domain"
)

// Alias de búsqueda por categoría: sinónimos que la gente tipea aunque no
// figuren en el nombre del producto ("cubierta" por neumático, etc).
var categorySearchLabel = map[domain.Category]string{
	domain.CategoryAceites:    "aceite aceites lubricante lubricantes",
	domain.CategoryNeumaticos: "neumatico neumaticos cubierta cubiertas",
	domain.CategoryFiltros:    "filtro filtros",
	domain.CategoryOffroad:    "offroad off road 4x4",
	domain.CategoryRacing:     "racing performance",
}

// Pesos por campo. Cada término toma el MÁXIMO entre campos, no la suma.
const (
	weightFullMatch   = 7
	weightName        = 6
	weightBrand       = 5
	weightTags        = 4
	weightDescription = 3
	weightCategory    = 2
)

// normalizeSearchValue deja el texto listo para comparar por substring:
// descompone Unicode y descarta diacríticos, pasa a minúsculas, reemplaza
// todo lo que no sea [a-z0-9] por espacio y colapsa espacios. Se aplica
// igual al término buscado y a los campos del producto, así "cubierta"
// matchea "Cubiertas" y "sintetico" matchea "sintético".
func normalizeSearchValue(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type scoredProduct struct {
	product domain.Product
	score   int
	index   int
}

// QueryProducts aplica los filtros del catálogo sobre la lista completa y,
// si hay texto de búsqueda, rankea por relevancia. Sin filtros devuelve la
// lista tal cual. Categoría o versión desconocidas dan resultado vacío, no
// error. Nunca muta los productos de entrada.
func QueryProducts(all []domain.Product, f domain.ProductFilter) []domain.Product {
	if f.Empty() {
		return all
	}

	filtered := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.VersionID != "" && !p.CompatibleWith(f.VersionID) {
			continue
		}
		filtered = append(filtered, p)
	}

	search := normalizeSearchValue(f.Search)
	if search == "" {
		return filtered
	}
	terms := strings.Fields(search)

	scored := make([]scoredProduct, 0, len(filtered))
	for i, p := range filtered {
		name := normalizeSearchValue(p.Name)
		brand := normalizeSearchValue(p.BrandLabel)
		description := normalizeSearchValue(p.Description)
		tags := normalizeSearchValue(strings.Join(p.Tags, " "))
		category := categorySearchLabel[p.Category]
		if category == "" {
			category = normalizeSearchValue(string(p.Category))
		}

		fullText := name + " " + brand + " " + description + " " + tags + " " + category

		score := 0
		if strings.Contains(fullText, search) {
			score += weightFullMatch
		}

		matched := true
		for _, term := range terms {
			termScore := 0
			if strings.Contains(name, term) {
				termScore = weightName
			} else if strings.Contains(brand, term) {
				termScore = weightBrand
			} else if strings.Contains(tags, term) {
				termScore = weightTags
			} else if strings.Contains(description, term) {
				termScore = weightDescription
			} else if strings.Contains(category, term) {
				termScore = weightCategory
			}
			// AND entre términos: uno sin match descarta el producto.
			if termScore == 0 {
				matched = false
				break
			}
			score += termScore
		}
		if !matched {
			continue
		}
		scored = append(scored, scoredProduct{product: p, score: score, index: i})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})

	out := make([]domain.Product, 0, len(scored))
	for _, sp := range scored {
		out = append(out, sp.product)
	}
	return out
}
