package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var shape = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*)?$`)

func TestMake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Category 1", "category-1"},
		{"  Hello,   World!  ", "hello-world"},
		{"--already-slugged--", "already-slugged"},
		{"Go & Rust: a -- comparison", "go-rust-a-comparison"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Ünïcödé títle", "ncd-ttle"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func FuzzMake(f *testing.F) {
	for _, seed := range []string{"Category 1", " a - b ", "ÀÉÎ", "x--y", "\t\n", "Post #42: Draft"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Make(s)
		if Make(once) != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, Make(once))
		}
		if !shape.MatchString(once) {
			t.Fatalf("unexpected shape %q for input %q", once, s)
		}
	})
}
