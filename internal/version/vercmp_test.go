package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareSegment(t *testing.T) {
	var cases = []struct {
		a, b string
		want Order
	}{
		{"1.2", "1.2", Equal},
		{"1.10", "1.9", Greater},
		{"1.0a", "1.0", Less},
		{"1.0.1", "1.0", Greater},
		{"7", "007", Equal},
		{"1.007", "1.7", Equal},
		{"2.0", "10.0", Less},
		{"1.0", "1.0.", Equal},
		{"1.0", "1.0..", Equal},
		{"1_0", "1.0", Equal},
		{"1.0", "1.a", Greater},
		{"alpha", "beta", Less},
		{"B", "a", Less},
		{"1.0rc1", "1.0rc2", Less},
		{"1.0~rc1", "1.0", Less},
		{"alt1", "alt2", Less},
		{"alt10", "alt9", Greater},
		{"alt1.1", "alt1", Greater},
		{"", "", Equal},
		{"", "0", Less},
		{"", "a", Less},
		{"", ".", Less},
		{"12345678901234567890", "12345678901234567889", Greater},
	}

	for _, tt := range cases {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareSegment(tt.a, tt.b))
			assert.Equal(t, tt.want.Invert(), CompareSegment(tt.b, tt.a))
		})
	}
}

func TestCompare(t *testing.T) {
	var cases = []struct {
		name   string
		va, ra string
		vb, rb string
		want   Order
	}{
		{"identical", "1.2", "alt1", "1.2", "alt1", Equal},
		{"version decides", "2.0", "alt1", "1.9", "alt5", Greater},
		{"release decides", "1.0", "alt2", "1.0", "alt1", Greater},
		{"release ignored when versions differ", "1.0", "alt9", "1.1", "alt1", Less},
		{"empty release sorts first", "1.0", "", "1.0", "alt1", Less},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.va, tt.ra, tt.vb, tt.rb))
			assert.Equal(t, tt.want.Invert(), Compare(tt.vb, tt.rb, tt.va, tt.ra))
		})
	}
}

func TestCompareEVR(t *testing.T) {
	assert.Equal(t, Greater, CompareEVR(1, "1.0", "alt1", 0, "9.9", "alt9"))
	assert.Equal(t, Less, CompareEVR(0, "9.9", "alt9", 1, "1.0", "alt1"))
	assert.Equal(t, Greater, CompareEVR(2, "1.0", "alt2", 2, "1.0", "alt1"))
	assert.Equal(t, Equal, CompareEVR(0, "1.0", "alt1", 0, "1.0", "alt1"))
}

// corpus is small enough to check every pair and triple.
var corpus = []string{
	"", ".", "-", "~", "0", "00", "1", "01", "1.0", "1.0.", "1.0a", "1.0b", "1.0.1",
	"1.a", "1a", "a", "A", "b", "1.10", "1.9", "1.9.9", "2", "10", "alt1", "alt1.1",
	"alt10", "alt2", "rc1", "1.0rc1", "1.0~rc1", "1..0", "a1", "a.1", "1_0", "z9",
}

func TestCompareSegmentIsTotalOrder(t *testing.T) {
	for _, a := range corpus {
		assert.Equal(t, Equal, CompareSegment(a, a), "reflexive %q", a)
		for _, b := range corpus {
			ab := CompareSegment(a, b)
			assert.Contains(t, []Order{Less, Equal, Greater}, ab)
			assert.Equal(t, ab.Invert(), CompareSegment(b, a), "antisymmetric %q %q", a, b)
		}
	}
}

func TestCompareSegmentIsTransitive(t *testing.T) {
	for _, a := range corpus {
		for _, b := range corpus {
			ab := CompareSegment(a, b)
			for _, c := range corpus {
				bc := CompareSegment(b, c)
				ac := CompareSegment(a, c)
				switch {
				case ab == Equal && bc == Equal:
					assert.Equal(t, Equal, ac, "%q = %q = %q", a, b, c)
				case ab != Greater && bc != Greater && (ab == Less || bc == Less):
					assert.Equal(t, Less, ac, "%q <= %q <= %q", a, b, c)
				case ab != Less && bc != Less && (ab == Greater || bc == Greater):
					assert.Equal(t, Greater, ac, "%q >= %q >= %q", a, b, c)
				}
			}
		}
	}
}

func TestOrder_String(t *testing.T) {
	assert.Equal(t, "LESS", Less.String())
	assert.Equal(t, "EQUAL", Equal.String())
	assert.Equal(t, "GREATER", Greater.String())
}
