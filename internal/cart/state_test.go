package cart

import (
	"reflect"
	"testing"
)

func chocolate(qty int) Item {
	return Item{ProductID: "sorvete-chocolate", Name: "Sorvete de Chocolate", Price: 8.90, Quantity: qty}
}

func strawberry(qty int) Item {
	return Item{ProductID: "sorvete-morango", Name: "Sorvete de Morango", Price: 8.90, Quantity: qty}
}

func TestAddItemAppendsAndIncrements(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, AddItem(strawberry(2)))
	state = Apply(state, AddItem(chocolate(1)))

	if len(state.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != 2 {
		t.Fatalf("expected chocolate quantity 2, got %d", state.Items[0].Quantity)
	}
	if state.TotalItems() != 4 {
		t.Fatalf("expected 4 total items, got %d", state.TotalItems())
	}
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(0)))
	if state.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", state.Items[0].Quantity)
	}
}

func TestFinalizedLinesAreImmutable(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, FinalizeOrder())

	for _, cmd := range []Command{
		AddItem(chocolate(1)),
		RemoveItem("sorvete-chocolate"),
		UpdateQuantity("sorvete-chocolate", 5),
	} {
		next := Apply(state, cmd)
		if !reflect.DeepEqual(next, state) {
			t.Fatalf("command %s modified a finalized line: %+v", cmd.Type, next)
		}
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(2)))

	state = Apply(state, UpdateQuantity("sorvete-chocolate", 0))

	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.Items)
	}
}

func TestRequestCancellationIgnoresUnplacedLines(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))

	state = Apply(state, RequestCancellation("sorvete-chocolate"))
	state = Apply(state, RequestCancellation("produto-fantasma"))

	if len(state.CancelledIDs) != 0 {
		t.Fatalf("expected no cancellations before finalize, got %v", state.CancelledIDs)
	}
	if state.IsCancelled("sorvete-chocolate") {
		t.Fatal("unplaced line must not be cancellable")
	}
}

func TestClearKeepsFinalizedAndCancelledLines(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, FinalizeOrder())
	state = Apply(state, AddItem(strawberry(1)))
	milkshake := Item{ProductID: "milkshake-chocolate", Name: "Milkshake de Chocolate", Price: 10.90, Quantity: 1}
	state = Apply(state, AddItem(milkshake))
	state = Apply(state, RequestCancellation("milkshake-chocolate"))

	state = Apply(state, ClearCart())

	ids := make([]string, 0, len(state.Items))
	for _, item := range state.Items {
		ids = append(ids, item.ProductID)
	}
	want := []string{"sorvete-chocolate", "milkshake-chocolate"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v to survive clear, got %v", want, ids)
	}
}

func TestFinalizeSnapshotsCurrentLines(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, AddItem(strawberry(1)))

	state = Apply(state, FinalizeOrder())

	if !state.OrderCompleted {
		t.Fatal("expected order completed flag")
	}
	if !state.IsFinalized("sorvete-chocolate") || !state.IsFinalized("sorvete-morango") {
		t.Fatalf("expected both lines finalized, got %v", state.FinalizedIDs)
	}

	// A second order finalizes new lines without duplicating existing ids.
	state = Apply(state, AddItem(chocolate(1)))
	state = Apply(state, FinalizeOrder())
	if len(state.FinalizedIDs) != 2 {
		t.Fatalf("expected 2 finalized ids, got %v", state.FinalizedIDs)
	}
}

func TestRequestCancellationIsIdempotent(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, FinalizeOrder())

	state = Apply(state, RequestCancellation("sorvete-chocolate"))
	state = Apply(state, RequestCancellation("sorvete-chocolate"))

	if len(state.CancelledIDs) != 1 {
		t.Fatalf("expected single cancellation entry, got %v", state.CancelledIDs)
	}
}

func TestStartNewOrderResetsEverything(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(1)))
	state = Apply(state, FinalizeOrder())
	state = Apply(state, RequestCancellation("sorvete-chocolate"))

	state = Apply(state, StartNewOrder())

	if !reflect.DeepEqual(state, NewState()) {
		t.Fatalf("expected pristine state, got %+v", state)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := Apply(NewState(), AddItem(chocolate(1)))
	snapshot := cloneState(original)

	_ = Apply(original, AddItem(chocolate(3)))
	_ = Apply(original, FinalizeOrder())
	_ = Apply(original, RemoveItem("sorvete-chocolate"))

	if !reflect.DeepEqual(original, snapshot) {
		t.Fatalf("input state mutated: %+v", original)
	}
}

func TestTotalPriceUsesDecimalArithmetic(t *testing.T) {
	state := Apply(NewState(), AddItem(chocolate(3)))
	if got := state.TotalPrice().StringFixed(2); got != "26.70" {
		t.Fatalf("expected 26.70, got %s", got)
	}
}
