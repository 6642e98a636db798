package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tomato Seeds", "tomato-seeds"},
		{"  Trim Me  ", "trim-me"},
		{"Насіння огірка 'Ніжин'", "насіння-огірка-ніжин"},
		{"Add__under_scores", "add-under-scores"},
		{"multi   space - runs", "multi-space-runs"},
		{"!!!", "product"},
		{"", "product"},
		{"Price 10,50 грн", "price-1050-грн"},
	}
	for _, tt := range tests {
		if got := Make(tt.in); got != tt.want {
			t.Fatalf("Make(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithSuffix(t *testing.T) {
	if got := WithSuffix("tomato-seeds", 2); got != "tomato-seeds-2" {
		t.Fatalf("unexpected suffixed slug %q", got)
	}
}
