package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one cart line.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"nome"`
	Price     float64 `json:"valor"`
	Quantity  int     `json:"quantidade"`
}

// Subtotal is price times quantity for this line.
func (i Item) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is the full cart for one session. Finalized ids are lines that belong
// to a placed order and can no longer be edited; cancelled ids are finalized
// lines the customer asked staff to cancel.
type State struct {
	Items          []Item   `json:"items"`
	FinalizedIDs   []string `json:"finalizedIds"`
	CancelledIDs   []string `json:"cancelledIds"`
	OrderCompleted bool     `json:"orderCompleted"`
}

// NewState returns an empty cart.
func NewState() State {
	return State{}
}

// IsFinalized reports whether the product belongs to a placed order.
func (s State) IsFinalized(productID string) bool {
	return containsID(s.FinalizedIDs, productID)
}

// IsCancelled reports whether cancellation was requested for the product.
func (s State) IsCancelled(productID string) bool {
	return containsID(s.CancelledIDs, productID)
}

// TotalItems sums the quantities of every line.
func (s State) TotalItems() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums the line subtotals.
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CommandType names a cart transition.
type CommandType string

const (
	CommandAddItem             CommandType = "ADD_ITEM"
	CommandRemoveItem          CommandType = "REMOVE_ITEM"
	CommandUpdateQuantity      CommandType = "UPDATE_QUANTITY"
	CommandClearCart           CommandType = "CLEAR_CART"
	CommandFinalizeOrder       CommandType = "FINALIZE_ORDER"
	CommandRequestCancellation CommandType = "REQUEST_CANCELLATION"
	CommandStartNewOrder       CommandType = "START_NEW_ORDER"
)

// Command is one cart transition request.
type Command struct {
	Type      CommandType
	Item      Item
	ProductID string
	Quantity  int
}

// AddItem builds an ADD_ITEM command.
func AddItem(item Item) Command {
	return Command{Type: CommandAddItem, Item: item}
}

// RemoveItem builds a REMOVE_ITEM command.
func RemoveItem(productID string) Command {
	return Command{Type: CommandRemoveItem, ProductID: productID}
}

// UpdateQuantity builds an UPDATE_QUANTITY command.
func UpdateQuantity(productID string, quantity int) Command {
	return Command{Type: CommandUpdateQuantity, ProductID: productID, Quantity: quantity}
}

// ClearCart builds a CLEAR_CART command.
func ClearCart() Command {
	return Command{Type: CommandClearCart}
}

// FinalizeOrder builds a FINALIZE_ORDER command.
func FinalizeOrder() Command {
	return Command{Type: CommandFinalizeOrder}
}

// RequestCancellation builds a REQUEST_CANCELLATION command. It only takes
// effect on finalized lines.
func RequestCancellation(productID string) Command {
	return Command{Type: CommandRequestCancellation, ProductID: productID}
}

// StartNewOrder builds a START_NEW_ORDER command.
func StartNewOrder() Command {
	return Command{Type: CommandStartNewOrder}
}

// Apply is the pure cart transition. It never mutates its input and unknown
// command types leave the state unchanged.
func Apply(state State, cmd Command) State {
	switch cmd.Type {
	case CommandAddItem:
		return applyAdd(state, cmd.Item)
	case CommandRemoveItem:
		return applyRemove(state, cmd.ProductID)
	case CommandUpdateQuantity:
		return applyUpdateQuantity(state, cmd.ProductID, cmd.Quantity)
	case CommandClearCart:
		return applyClear(state)
	case CommandFinalizeOrder:
		return applyFinalize(state)
	case CommandRequestCancellation:
		return applyRequestCancellation(state, cmd.ProductID)
	case CommandStartNewOrder:
		return NewState()
	}
	return cloneState(state)
}

func applyAdd(state State, item Item) State {
	if state.IsFinalized(item.ProductID) {
		return cloneState(state)
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	next := cloneState(state)
	for i := range next.Items {
		if next.Items[i].ProductID == item.ProductID {
			next.Items[i].Quantity += item.Quantity
			return next
		}
	}
	next.Items = append(next.Items, item)
	return next
}

func applyRemove(state State, productID string) State {
	if state.IsFinalized(productID) {
		return cloneState(state)
	}

	next := cloneState(state)
	next.Items = removeItem(next.Items, productID)
	next.CancelledIDs = removeID(next.CancelledIDs, productID)
	return next
}

func applyUpdateQuantity(state State, productID string, quantity int) State {
	if state.IsFinalized(productID) {
		return cloneState(state)
	}
	if quantity <= 0 {
		return applyRemove(state, productID)
	}

	next := cloneState(state)
	for i := range next.Items {
		if next.Items[i].ProductID == productID {
			next.Items[i].Quantity = quantity
			break
		}
	}
	return next
}

// applyClear drops every line that is not part of a placed order and has no
// pending cancellation request.
func applyClear(state State) State {
	next := cloneState(state)
	kept := make([]Item, 0, len(next.Items))
	for _, item := range next.Items {
		if next.IsFinalized(item.ProductID) || next.IsCancelled(item.ProductID) {
			kept = append(kept, item)
		}
	}
	next.Items = kept
	return next
}

func applyFinalize(state State) State {
	next := cloneState(state)
	for _, item := range next.Items {
		if !containsID(next.FinalizedIDs, item.ProductID) {
			next.FinalizedIDs = append(next.FinalizedIDs, item.ProductID)
		}
	}
	next.OrderCompleted = true
	return next
}

// applyRequestCancellation only accepts ids of placed lines, keeping the
// cancelled set a subset of the finalized set.
func applyRequestCancellation(state State, productID string) State {
	next := cloneState(state)
	if !next.IsFinalized(productID) {
		return next
	}
	if !containsID(next.CancelledIDs, productID) {
		next.CancelledIDs = append(next.CancelledIDs, productID)
	}
	return next
}

func cloneState(state State) State {
	next := State{OrderCompleted: state.OrderCompleted}
	if state.Items != nil {
		next.Items = append([]Item(nil), state.Items...)
	}
	if state.FinalizedIDs != nil {
		next.FinalizedIDs = append([]string(nil), state.FinalizedIDs...)
	}
	if state.CancelledIDs != nil {
		next.CancelledIDs = append([]string(nil), state.CancelledIDs...)
	}
	return next
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	kept := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}

func removeItem(items []Item, productID string) []Item {
	kept := items[:0:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}
