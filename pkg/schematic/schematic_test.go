package schematic

import (
	"reflect"
	"testing"
)

func TestDemoBoardShape(t *testing.T) {
	board := DemoBoard()

	if len(board) != 6 {
		t.Fatalf("DemoBoard() returned %d components, want 6", len(board))
	}

	wantIDs := []string{"IC1", "D1", "R1", "SW1", "PWR1", "PWR2"}
	for i, want := range wantIDs {
		if board[i].ID != want {
			t.Errorf("component[%d].ID = %q, want %q", i, board[i].ID, want)
		}
	}

	for _, c := range board {
		if len(c.Pins) == 0 {
			t.Errorf("component %s has no pins", c.ID)
		}
	}

	if got := len(board[0].Pins); got != 25 {
		t.Errorf("IC1 has %d pins, want 25", got)
	}
	if board[5].Value != "0V (Ground)" {
		t.Errorf("PWR2.Value = %q, want %q", board[5].Value, "0V (Ground)")
	}
}

func TestDemoBoardDeterministic(t *testing.T) {
	a, b := DemoBoard(), DemoBoard()
	if !reflect.DeepEqual(a, b) {
		t.Error("DemoBoard() is not identical across calls")
	}

	// Mutating one call's result must not leak into the next.
	a[0].Pins[0].ConnectedTo = "R1.1"
	c := DemoBoard()
	if c[0].Pins[0].ConnectedTo != "" {
		t.Error("DemoBoard() shares pin storage across calls")
	}
}

func TestComponentPin(t *testing.T) {
	c := Component{ID: "R1", Pins: []Pin{{Name: "1"}, {Name: "2"}}}

	if _, ok := c.Pin("2"); !ok {
		t.Error(`Pin("2") not found`)
	}
	if _, ok := c.Pin("3"); ok {
		t.Error(`Pin("3") unexpectedly found`)
	}
}

func TestConnectionEndpoints(t *testing.T) {
	conn := Connection{FromComponent: "IC1", FromPin: "D2", ToComponent: "LED1", ToPin: "A"}
	from, to := conn.Endpoints()
	if from != "IC1.D2" || to != "LED1.A" {
		t.Errorf("Endpoints() = %q, %q", from, to)
	}
}

func TestFind(t *testing.T) {
	board := DemoBoard()
	if Find(board, "R1") == nil {
		t.Error(`Find("R1") = nil`)
	}
	if Find(board, "R99") != nil {
		t.Error(`Find("R99") != nil`)
	}
}
