package search

import "testing"

func TestLIFOOrder(t *testing.T) {
	f := NewLIFO[int]()

	f.Push(1)
	f.Push(2)
	f.Push(3)

	if f.Len() != 3 {
		t.Errorf("Expected length 3, got %d", f.Len())
	}

	want := []int{3, 2, 1}
	for i, expected := range want {
		item, ok := f.Pop()
		if !ok {
			t.Fatalf("Pop %d: expected an item", i)
		}
		if item != expected {
			t.Errorf("Pop %d: expected %d, got %d", i, expected, item)
		}
	}

	if _, ok := f.Pop(); ok {
		t.Error("Expected empty frontier after draining")
	}
}

func TestFIFOOrder(t *testing.T) {
	f := NewFIFO[int]()

	f.Push(1)
	f.Push(2)
	f.Push(3)

	want := []int{1, 2, 3}
	for i, expected := range want {
		item, ok := f.Pop()
		if !ok {
			t.Fatalf("Pop %d: expected an item", i)
		}
		if item != expected {
			t.Errorf("Pop %d: expected %d, got %d", i, expected, item)
		}
	}

	if f.Len() != 0 {
		t.Errorf("Expected length 0 after draining, got %d", f.Len())
	}
}

func TestFrontierInterleavedPushPop(t *testing.T) {
	t.Run("lifo", func(t *testing.T) {
		f := NewLIFO[string]()
		f.Push("a")
		f.Push("b")

		if item, _ := f.Pop(); item != "b" {
			t.Errorf("Expected b, got %s", item)
		}

		f.Push("c")

		if item, _ := f.Pop(); item != "c" {
			t.Errorf("Expected c, got %s", item)
		}
		if item, _ := f.Pop(); item != "a" {
			t.Errorf("Expected a, got %s", item)
		}
	})

	t.Run("fifo", func(t *testing.T) {
		f := NewFIFO[string]()
		f.Push("a")
		f.Push("b")

		if item, _ := f.Pop(); item != "a" {
			t.Errorf("Expected a, got %s", item)
		}

		f.Push("c")

		if item, _ := f.Pop(); item != "b" {
			t.Errorf("Expected b, got %s", item)
		}
		if item, _ := f.Pop(); item != "c" {
			t.Errorf("Expected c, got %s", item)
		}
	})
}

func TestPopEmpty(t *testing.T) {
	lifo := NewLIFO[int]()
	if _, ok := lifo.Pop(); ok {
		t.Error("Expected ok=false from empty LIFO frontier")
	}

	fifo := NewFIFO[int]()
	if _, ok := fifo.Pop(); ok {
		t.Error("Expected ok=false from empty FIFO frontier")
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    Order
		wantErr bool
	}{
		{"", FIFO, false},
		{"bfs", FIFO, false},
		{"dfs", LIFO, false},
		{"BFS", FIFO, true},
		{"best-first", FIFO, true},
	}

	for _, tt := range tests {
		got, err := ParseOrder(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOrder(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOrder(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrder(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}

func TestOrderString(t *testing.T) {
	if FIFO.String() != "bfs" {
		t.Errorf("Expected bfs, got %s", FIFO.String())
	}
	if LIFO.String() != "dfs" {
		t.Errorf("Expected dfs, got %s", LIFO.String())
	}
}
