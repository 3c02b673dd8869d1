package formatter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/ralt/rdbdiff/internal/catalog"
	"github.com/ralt/rdbdiff/internal/diff"
	"github.com/ralt/rdbdiff/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func sampleResult(t *testing.T) *diff.Result {
	t.Helper()
	c1, err := catalog.Build("sisyphus", []models.RawRecord{
		{Name: "pkgA", Version: "1.0", Release: "1", Arch: "x86_64"},
		{Name: "pkgB", Version: "2.0", Release: "1", Arch: "x86_64"},
		{Name: "tzdata", Version: "2024a", Release: "alt1", Arch: "noarch"},
	})
	require.NoError(t, err)
	c2, err := catalog.Build("p10", []models.RawRecord{
		{Name: "pkgB", Version: "1.9", Release: "1", Arch: "x86_64"},
		{Name: "pkgC", Version: "1.0", Release: "1", Arch: "x86_64"},
		{Name: "tzdata", Version: "2024a", Release: "alt1", Arch: "noarch"},
	})
	require.NoError(t, err)
	return diff.All(c1, c2)
}

func TestSerialize(t *testing.T) {
	out, err := Serialize(sampleResult(t))
	require.NoError(t, err)

	expected := `{
  "architectures": {
    "noarch": {
      "branch1_only": [],
      "branch2_only": [],
      "branch1_newer": []
    },
    "x86_64": {
      "branch1_only": ["pkgA"],
      "branch2_only": ["pkgC"],
      "branch1_newer": [
        {
          "name": "pkgB",
          "branch1_version_release": "2.0-1",
          "branch2_version_release": "1.9-1"
        }
      ]
    }
  },
  "summary": {
    "total_branch1_only_count": 1,
    "total_branch2_only_count": 1,
    "total_branch1_newer_count": 1
  }
}`
	assert.JSONEq(t, expected, string(out))
}

func TestSerializeDecodesLoosely(t *testing.T) {
	out, err := Serialize(sampleResult(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	arches := doc["architectures"].(map[string]any)
	assert.Len(t, arches, 2)
	assert.Contains(t, arches, "noarch")
}

func TestParseCategory(t *testing.T) {
	var cases = []struct {
		in   string
		want []string
		ok   bool
	}{
		{"all", Categories, true},
		{"", Categories, true},
		{"branch1_only", []string{"branch1_only"}, true},
		{"branch2_only", []string{"branch2_only"}, true},
		{"branch1_newer", []string{"branch1_newer"}, true},
		{"branch2_newer", nil, false},
	}

	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if !tt.ok {
				assert.True(t, models.IsType(err, models.ErrInvalidConfig))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTree(t *testing.T) {
	r := sampleResult(t)

	t.Run("all categories", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderTree(&buf, r, Categories))

		out := buf.String()
		t.Logf("tree:\n%s", out)
		assert.Contains(t, out, "--- Architecture: x86_64 ---")
		assert.Contains(t, out, "  Branch1 only (1):\n    - pkgA\n")
		assert.Contains(t, out, "  Branch2 only (1):\n    - pkgC\n")
		assert.Contains(t, out, "    - pkgB: B1(2.0-1) > B2(1.9-1)\n")
		assert.Contains(t, out, "--- Architecture: noarch ---\n  No differences in the requested categories.\n")
		assert.Contains(t, out, "Total: 1 only in sisyphus, 1 only in p10, 1 newer in sisyphus")
	})
	t.Run("single category", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderTree(&buf, r, []string{models.CategoryBranch2Only}))

		out := buf.String()
		assert.Contains(t, out, "    - pkgC\n")
		assert.NotContains(t, out, "pkgA")
		assert.Contains(t, out, "Branch2 only: no differences.")
	})
	t.Run("no architectures", func(t *testing.T) {
		empty, err := catalog.Build("p10", nil)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, RenderTree(&buf, diff.All(empty, empty), Categories))
		assert.Equal(t, "No architectures to compare.\n", buf.String())
	})
}
