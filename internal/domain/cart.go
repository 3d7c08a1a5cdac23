package domain

// CartLine es un renglón del carrito. Nombre y precio quedan congelados al
// momento del alta, no siguen al producto.
type CartLine struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// CartState es la secuencia de renglones, en orden de inserción y sin
// ProductID repetido. Los totales se derivan siempre, nunca se guardan.
type CartState struct {
	Items []CartLine `json:"items"`
}

func (s CartState) TotalItems() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s CartState) TotalPrice() float64 {
	total := 0.0
	for _, it := range s.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (s CartState) Find(productID string) (CartLine, bool) {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartLine{}, false
}
