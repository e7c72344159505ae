package pagination

import (
	"reflect"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		total     int
		wantPages []int
		wantFirst bool
		wantLast  bool
	}{
		{"first of ten", 1, 10, []int{1, 2, 3, 4, 5}, false, true},
		{"last of ten", 10, 10, []int{6, 7, 8, 9, 10}, true, false},
		{"middle of ten", 5, 10, []int{3, 4, 5, 6, 7}, true, true},
		{"third of ten pins left edge", 3, 10, []int{1, 2, 3, 4, 5}, false, true},
		{"fourth of ten slides", 4, 10, []int{2, 3, 4, 5, 6}, true, true},
		{"eighth of ten pins right edge", 8, 10, []int{6, 7, 8, 9, 10}, true, false},
		{"single page", 1, 1, []int{1}, false, false},
		{"three pages", 2, 3, []int{1, 2, 3}, false, false},
		{"exactly five pages", 5, 5, []int{1, 2, 3, 4, 5}, false, false},
		{"six pages at end", 6, 6, []int{2, 3, 4, 5, 6}, true, false},
		{"zero total clamps", 1, 0, []int{1}, false, false},
		{"current beyond total clamps", 12, 10, []int{6, 7, 8, 9, 10}, true, false},
		{"current below one clamps", -3, 10, []int{1, 2, 3, 4, 5}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Compute(tt.current, tt.total)
			if !reflect.DeepEqual(w.Pages, tt.wantPages) {
				t.Errorf("Pages = %v, want %v", w.Pages, tt.wantPages)
			}
			if w.ShowFirst != tt.wantFirst {
				t.Errorf("ShowFirst = %v, want %v", w.ShowFirst, tt.wantFirst)
			}
			if w.ShowLast != tt.wantLast {
				t.Errorf("ShowLast = %v, want %v", w.ShowLast, tt.wantLast)
			}
		})
	}
}

func TestCompute_WindowAlwaysContainsCurrent(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for current := 1; current <= total; current++ {
			w := Compute(current, total)
			if current < w.Start || current > w.End {
				t.Fatalf("current %d outside window [%d,%d] of %d", current, w.Start, w.End, total)
			}
			wantWidth := WindowSize
			if total < WindowSize {
				wantWidth = total
			}
			if len(w.Pages) != wantWidth {
				t.Fatalf("window width %d for %d/%d, want %d", len(w.Pages), current, total, wantWidth)
			}
		}
	}
}

func BenchmarkCompute(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Compute(i%50+1, 50)
	}
}
