package pagination

import "testing"

func TestNormalizePageSize(t *testing.T) {
	if got := NormalizePageSize(0, 0); got != DefaultPageSize {
		t.Fatalf("expected default %d got %d", DefaultPageSize, got)
	}
	if got := NormalizePageSize(-3, 10); got != 10 {
		t.Fatalf("expected fallback 10 got %d", got)
	}
	if got := NormalizePageSize(MaxPageSize+1, 4); got != MaxPageSize {
		t.Fatalf("expected cap %d got %d", MaxPageSize, got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ total, size, want int }{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{9, 4, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Fatalf("TotalPages(%d,%d)=%d want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestResolveClampsAndBounds(t *testing.T) {
	for total := 0; total <= 13; total++ {
		for page := -1; page <= 6; page++ {
			w := Resolve(Params{Page: page, PageSize: 4}, total, 0)
			if w.Page < 1 {
				t.Fatalf("page below 1: %+v", w)
			}
			if w.TotalPages > 0 && w.Page > w.TotalPages {
				t.Fatalf("page beyond total: %+v", w)
			}
			length := w.End - w.Start
			want := total - (w.Page-1)*4
			if want > 4 {
				want = 4
			}
			if want < 0 {
				want = 0
			}
			if length != want {
				t.Fatalf("total=%d page=%d: length %d want %d (%+v)", total, page, length, want, w)
			}
		}
	}
}
