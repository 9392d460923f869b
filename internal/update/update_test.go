package update

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name      string
		changelog string
		max       int
		want      []string
	}{
		{"empty", "", 3, nil},
		{"whitespace only", "\n  \n", 3, nil},
		{"short", "one\ntwo", 3, []string{"one", "two"}},
		{"exact", "one\ntwo\nthree", 3, []string{"one", "two", "three"}},
		{"truncated", "a\nb\nc\nd\ne", 2, []string{"a", "b", "... (3 more lines)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Excerpt(tt.changelog, tt.max))
		})
	}
}

func TestPlatform(t *testing.T) {
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, Platform())
}
