// Package cart implementa la máquina de estados del carrito: un reducer puro
// sobre domain.CartState más un store observable que persiste un snapshot
// completo después de cada mutación.
package cart

import "github.com/clavel/clavelparts/internal/domain"

type ActionType string

const (
	ActionHydrate        ActionType = "HYDRATE"
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionClear          ActionType = "CLEAR_CART"
)

// Action es el comando discriminado por Type; sólo se leen los campos que
// corresponden a cada tipo.
type Action struct {
	Type      ActionType
	Line      domain.CartLine
	ProductID string
	Quantity  int
	Snapshot  domain.CartState
}

func Hydrate(snapshot domain.CartState) Action {
	return Action{Type: ActionHydrate, Snapshot: snapshot}
}

func AddItem(line domain.CartLine) Action {
	return Action{Type: ActionAddItem, Line: line}
}

func RemoveItem(productID string) Action {
	return Action{Type: ActionRemoveItem, ProductID: productID}
}

func UpdateQuantity(productID string, quantity int) Action {
	return Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity}
}

func Clear() Action {
	return Action{Type: ActionClear}
}

// Reduce es la transición pura: devuelve siempre un estado nuevo, nunca
// modifica el recibido. Acciones sobre ids ausentes son no-op.
func Reduce(state domain.CartState, a Action) domain.CartState {
	switch a.Type {
	case ActionHydrate:
		return a.Snapshot

	case ActionAddItem:
		items := make([]domain.CartLine, 0, len(state.Items)+1)
		merged := false
		for _, it := range state.Items {
			if it.ProductID == a.Line.ProductID {
				it.Quantity += a.Line.Quantity
				merged = true
			}
			items = append(items, it)
		}
		if !merged {
			items = append(items, a.Line)
		}
		return domain.CartState{Items: items}

	case ActionRemoveItem:
		items := make([]domain.CartLine, 0, len(state.Items))
		for _, it := range state.Items {
			if it.ProductID != a.ProductID {
				items = append(items, it)
			}
		}
		return domain.CartState{Items: items}

	case ActionUpdateQuantity:
		items := make([]domain.CartLine, 0, len(state.Items))
		for _, it := range state.Items {
			if it.ProductID == a.ProductID {
				// cantidades menores a 1 se recortan, nunca se rechazan
				if a.Quantity < 1 {
					it.Quantity = 1
				} else {
					it.Quantity = a.Quantity
				}
			}
			items = append(items, it)
		}
		return domain.CartState{Items: items}

	case ActionClear:
		return domain.CartState{}
	}
	return state
}
