package rpm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValue(t *testing.T) {
	assert.Equal(t, "bash", stringValue("bash"))
	assert.Equal(t, "bash", stringValue([]byte("bash")))
	assert.Equal(t, "bash", stringValue([]string{"bash", "ignored"}))
	assert.Equal(t, "", stringValue([]string{}))
	assert.Equal(t, "", stringValue(nil))
	assert.Equal(t, "42", stringValue(42))
}

func TestIntValue(t *testing.T) {
	var cases = []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int", 3, 3},
		{"int32", int32(3), 3},
		{"int64", int64(1700000000), 1700000000},
		{"uint32", uint32(7), 7},
		{"int slice", []int{2, 9}, 2},
		{"int32 slice", []int32{1}, 1},
		{"int64 slice", []int64{5}, 5},
		{"uint32 slice", []uint32{8}, 8},
		{"empty slice", []int{}, 0},
		{"string", "1", 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intValue(tt.in))
		})
	}
}

func TestParsePackage_NotAnRPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.rpm")
	if err := os.WriteFile(path, []byte("fake rpm package"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := ParsePackage(path)
	assert.Error(t, err)

	_, err = ParsePackage(filepath.Join(t.TempDir(), "missing.rpm"))
	assert.Error(t, err)
}
