package store

import "testing"

func TestNewImageIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewImageID()
		if !ValidImageID(id) {
			t.Fatalf("generated id failed validation: %q", id)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidImageID(t *testing.T) {
	cases := []struct {
		id   string
		want bool
	}{
		{"img_9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", true},
		{"img_", false},
		{"img_not-a-uuid", false},
		{"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d", false},
		{"", false},
		{"../../etc/passwd", false},
	}
	for _, tc := range cases {
		if got := ValidImageID(tc.id); got != tc.want {
			t.Errorf("ValidImageID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
