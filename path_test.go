package circed

import (
	"reflect"
	"testing"
)

// TestEncodeDecodeRoundTrip verifies paths survive an encode/decode cycle
func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]int{
		{0},
		{3},
		{0, 1},
		{2, 0, 5},
		{10, 0, 0, 7},
	}
	for _, indices := range cases {
		p := EncodePath(indices)
		got := p.Indices()
		if !reflect.DeepEqual(got, indices) {
			t.Errorf("EncodePath(%v).Indices() = %v", indices, got)
		}
	}
}

// TestDecodeEmpty verifies the empty path decodes to an empty sequence
func TestDecodeEmpty(t *testing.T) {
	got := Path("").Indices()
	if got == nil || len(got) != 0 {
		t.Errorf("empty path decoded to %v, want empty sequence", got)
	}
}

// TestDecodeMalformed verifies non-numeric paths decode to nil
func TestDecodeMalformed(t *testing.T) {
	for _, p := range []Path{"a", "0-b", "1--2", "-"} {
		if got := Path(p).Indices(); got != nil {
			t.Errorf("Indices(%q) = %v, want nil", p, got)
		}
	}
}

// TestLastIndex verifies the trailing index extraction
func TestLastIndex(t *testing.T) {
	tests := []struct {
		path Path
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"2-0-5", 5, true},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.path.LastIndex()
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LastIndex(%q) = %d, %v; want %d, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

// TestChild verifies child path construction
func TestChild(t *testing.T) {
	if got := Path("1-2").Child(0); got != "1-2-0" {
		t.Errorf("Child = %q, want 1-2-0", got)
	}
	if got := Path("").Child(3); got != "3" {
		t.Errorf("Child on empty path = %q, want 3", got)
	}
}
