package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no digits", "call me", ""},
		{"ten digit domestic", "2061234567", "+12061234567"},
		{"formatted domestic", "(206) 123-4567", "+12061234567"},
		{"tel scheme residue", "tel:12061234567", "+12061234567"},
		{"eleven digits leading one", "12061234567", "+12061234567"},
		{"already e164", "+12061234567", "+12061234567"},
		{"plus international", "+44 20 7946 0958", "+442079460958"},
		{"long number", "442079460958", "+442079460958"},
		{"area code typo", "4261234567", "+14251234567"},
		{"area code typo with country code", "14261234567", "+14251234567"},
		{"emoji label stripped", "☎️ 206-123-4567", "+12061234567"},
		{"short number keeps plus prefix", "12345", "+12345"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestPhoneIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"2061234567", "4261234567", "+12061234567", "12061234567",
		"(425) 555-0100", "442079460958", "12345",
	}
	for _, in := range inputs {
		once := Phone(in)
		assert.Equal(t, once, Phone(once), "Phone should be idempotent for %q", in)
	}
}

func TestLooksLikePhone(t *testing.T) {
	t.Parallel()

	assert.True(t, LooksLikePhone("+1 206 123 4567"))
	assert.True(t, LooksLikePhone("206-123-4567"))
	assert.True(t, LooksLikePhone("(206) 123.4567"))
	assert.False(t, LooksLikePhone("123 Main St"))
	assert.False(t, LooksLikePhone("Seattle, WA 98101"))
	assert.False(t, LooksLikePhone(""))
}
