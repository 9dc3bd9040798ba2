package service

import (
	"testing"
)

func TestPaginateClampsOutOfRangePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	window, total, page := paginate(items, 9, 3)
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
	if page != 2 {
		t.Fatalf("page = %d, want clamp to 2", page)
	}
	if len(window) != 1 || window[0] != 7 {
		t.Fatalf("window = %v, want [7]", window)
	}
}

func TestPaginateNegativePageAndDefaultSize(t *testing.T) {
	items := make([]int, 25)
	window, total, page := paginate(items, -3, 0)
	if page != 0 || total != 25 {
		t.Fatalf("page=%d total=%d", page, total)
	}
	if len(window) != defaultPageSize {
		t.Fatalf("window len = %d, want %d", len(window), defaultPageSize)
	}
}

func TestPaginateEmpty(t *testing.T) {
	window, total, page := paginate([]string{}, 4, 10)
	if len(window) != 0 || total != 0 || page != 0 {
		t.Fatalf("window=%v total=%d page=%d", window, total, page)
	}
}

func TestFilterItemsCaseInsensitive(t *testing.T) {
	items := []string{"Nairobi", "Mombasa", "Kisumu"}
	got := filterItems(items, "  NAIRO ", func(s, needle string) bool {
		return containsFold(needle, s)
	})
	if len(got) != 1 || got[0] != "Nairobi" {
		t.Fatalf("got %v", got)
	}

	// Blank query keeps everything.
	got = filterItems(items, "   ", func(s, needle string) bool { return false })
	if len(got) != 3 {
		t.Fatalf("blank query filtered to %v", got)
	}
}

func TestDistinctSorted(t *testing.T) {
	got := distinctSorted([]string{"Kisumu", "", "Nairobi", "Kisumu", "Embu"})
	want := []string{"Embu", "Kisumu", "Nairobi"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
