package registry

import "testing"

func TestSortKey(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"001", 1, true},
		{"014", 14, true},
		{"14", 14, true},
		{"0", 0, true},
		{" 7 ", 7, true},
		{"X99", 0, false},
		{"12a", 0, false},
		{"", 0, false},
		{"  ", 0, false},
	}

	for _, tt := range tests {
		got := SortKey(tt.in)
		if tt.ok {
			if got == nil {
				t.Errorf("SortKey(%q) = nil, want %d", tt.in, tt.want)
			} else if *got != tt.want {
				t.Errorf("SortKey(%q) = %d, want %d", tt.in, *got, tt.want)
			}
		} else if got != nil {
			t.Errorf("SortKey(%q) = %d, want nil", tt.in, *got)
		}
	}
}

func TestSortKeyLeadingZeroEquivalence(t *testing.T) {
	a := SortKey("001")
	b := SortKey("1")
	if a == nil || b == nil {
		t.Fatal("expected numeric sort keys")
	}
	if *a != *b {
		t.Errorf("\"001\" and \"1\" should share a sort key, got %d and %d", *a, *b)
	}
}
