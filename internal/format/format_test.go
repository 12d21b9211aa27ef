package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSI(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{2, "2"},
		{10, "10"},
		{12, "10"},
		{15, "20"},
		{0.5, "500m"},
		{1500, "2k"},
		{3000000, "3M"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SI(tc.in, 1), "SI(%v)", tc.in)
	}
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "10", Thousands(10))
	assert.Equal(t, "1,234.5", Thousands(1234.5))
	assert.Equal(t, "1,000,000", Thousands(1e6))
	a, b, c := 0.1, 0.2, 0.3
	assert.Equal(t, "0.6", Thousands(a+b+c))
	assert.Equal(t, "0.6", Thousands(c+b+a))
	assert.Equal(t, "8.61", Thousands(8.61))
}
