package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Joe Riley", "joe-riley"},
		{"  Anne-Marie  O'Neil ", "anne-marie-o-neil"},
		{"https://www.example.com/people/joe-riley", "https-www-example-com-people-joe-riley"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}
