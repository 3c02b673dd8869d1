package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/ralt/rdbdiff/internal/diff"
	"github.com/ralt/rdbdiff/internal/models"
)

// Categories lists every category in display order
var Categories = []string{
	models.CategoryBranch1Only,
	models.CategoryBranch2Only,
	models.CategoryBranch1Newer,
}

var categoryTitles = map[string]string{
	models.CategoryBranch1Only:  "Branch1 only",
	models.CategoryBranch2Only:  "Branch2 only",
	models.CategoryBranch1Newer: "Branch1 newer",
}

var (
	archColor     = color.New(color.Bold, color.FgCyan)
	categoryColor = color.New(color.Bold)
)

// ParseCategory expands a category flag value into the categories to display
func ParseCategory(s string) ([]string, error) {
	switch s {
	case models.CategoryAll, "":
		return append([]string(nil), Categories...), nil
	case models.CategoryBranch1Only, models.CategoryBranch2Only, models.CategoryBranch1Newer:
		return []string{s}, nil
	}
	return nil, &models.DiffError{
		Type: models.ErrInvalidConfig,
		Err:  fmt.Errorf("unknown category %q, expected one of %s or %s", s, strings.Join(Categories, ", "), models.CategoryAll),
	}
}

// RenderTree writes the selected categories of every architecture as an
// indented tree followed by the totals.
func RenderTree(w io.Writer, r *diff.Result, categories []string) error {
	tw := &treeWriter{w: w}

	arches := r.Architectures()
	if len(arches) == 0 {
		tw.printf("No architectures to compare.\n")
		return tw.err
	}

	for _, arch := range arches {
		d, _ := r.Arch(arch)
		tw.printf("\n%s\n", archColor.Sprintf("--- Architecture: %s ---", arch))

		printed := false
		for _, category := range categories {
			title := categoryTitles[category]
			n := categoryLen(d, category)
			if n == 0 {
				if len(categories) == 1 {
					tw.printf("\n  %s: no differences.\n", categoryColor.Sprint(title))
					printed = true
				}
				continue
			}

			printed = true
			tw.printf("\n  %s (%s):\n", categoryColor.Sprint(title), humanize.Comma(int64(n)))
			switch category {
			case models.CategoryBranch1Only:
				tw.printList(d.Branch1Only)
			case models.CategoryBranch2Only:
				tw.printList(d.Branch2Only)
			case models.CategoryBranch1Newer:
				for _, e := range d.Branch1Newer {
					tw.printf("    - %s: B1(%s) > B2(%s)\n", e.Name, e.Branch1VersionRelease, e.Branch2VersionRelease)
				}
			}
		}

		if !printed {
			tw.printf("  No differences in the requested categories.\n")
		}
	}

	s := r.Summary()
	tw.printf("\nTotal: %s only in %s, %s only in %s, %s newer in %s\n",
		humanize.Comma(int64(s.Branch1Only)), r.Branch1,
		humanize.Comma(int64(s.Branch2Only)), r.Branch2,
		humanize.Comma(int64(s.Branch1Newer)), r.Branch1,
	)
	return tw.err
}

func categoryLen(d diff.ArchDiff, category string) int {
	switch category {
	case models.CategoryBranch1Only:
		return len(d.Branch1Only)
	case models.CategoryBranch2Only:
		return len(d.Branch2Only)
	case models.CategoryBranch1Newer:
		return len(d.Branch1Newer)
	}
	return 0
}

// treeWriter keeps the first write error so rendering reads straight through
type treeWriter struct {
	w   io.Writer
	err error
}

func (t *treeWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *treeWriter) printList(names []string) {
	for _, name := range names {
		t.printf("    - %s\n", name)
	}
}
