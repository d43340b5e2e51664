package grid

import "testing"

func TestNeighborsInterior(t *testing.T) {
	got := Cell{2, 1}.Neighbors(4, 4)
	want := []Cell{{1, 1}, {3, 1}, {2, 2}}
	if len(got) != len(want) {
		t.Fatalf("Neighbors(2,1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors(2,1)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNeighborsCorners(t *testing.T) {
	tests := []struct {
		cell  Cell
		count int
	}{
		{Cell{1, 1}, 2},
		{Cell{4, 4}, 2},
		{Cell{1, 4}, 2},
		{Cell{2, 4}, 3},
		{Cell{2, 2}, 4},
	}
	for _, tt := range tests {
		if got := len(tt.cell.Neighbors(4, 4)); got != tt.count {
			t.Errorf("len(Neighbors(%v)) = %d, want %d", tt.cell, got, tt.count)
		}
	}
}

func TestNeighborsInBounds(t *testing.T) {
	for y := 1; y <= 3; y++ {
		for x := 1; x <= 5; x++ {
			for _, n := range (Cell{x, y}).Neighbors(5, 3) {
				if !n.In(5, 3) {
					t.Errorf("neighbor %v of (%d,%d) out of bounds", n, x, y)
				}
			}
		}
	}
}

func TestLessOrdersRowFirst(t *testing.T) {
	if !(Cell{4, 1}).Less(Cell{1, 2}) {
		t.Error("(4,1) should sort before (1,2): row wins")
	}
	if !(Cell{1, 2}).Less(Cell{2, 2}) {
		t.Error("(1,2) should sort before (2,2): column breaks the tie")
	}
	if (Cell{2, 2}).Less(Cell{2, 2}) {
		t.Error("a cell must not sort before itself")
	}
}

func TestManhattan(t *testing.T) {
	if d := (Cell{1, 1}).Manhattan(Cell{4, 3}); d != 5 {
		t.Errorf("Manhattan((1,1),(4,3)) = %d, want 5", d)
	}
}
