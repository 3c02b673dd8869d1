package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionFromPath(t *testing.T) {
	var cases = []struct {
		path string
		want Compression
	}{
		{"sisyphus.json", CompressionNone},
		{"sisyphus.json.gz", CompressionGzip},
		{"sisyphus.json.XZ", CompressionXZ},
		{"sisyphus.json.zst", CompressionZstd},
		{"sisyphus.json.zstd", CompressionZstd},
	}

	for _, tt := range cases {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, CompressionFromPath(tt.path))
		})
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(`{"length":1,"packages":[{"name":"bash","version":"5.2","release":"alt1","arch":"x86_64"}]}`)

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionXZ, CompressionZstd} {
		t.Run(string(c), func(t *testing.T) {
			packed, err := Compress(c, data)
			require.NoError(t, err)

			unpacked, err := Decompress(c, packed)
			require.NoError(t, err)
			assert.Equal(t, data, unpacked)
		})
	}
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Decompress(CompressionXZ, []byte("not xz"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, WriteFile(path, []byte("one"), 0644))
	require.NoError(t, WriteFile(path, []byte("two"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCalculateChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", CalculateChecksum(nil, "sha256"))
	assert.Len(t, CalculateChecksum([]byte("x"), "sha512"), 128)
}
