// Package diff compares two branch catalogs architecture by architecture.
package diff

import (
	"runtime"
	"sort"

	"github.com/ralt/rdbdiff/internal/catalog"
	"github.com/ralt/rdbdiff/internal/version"
	"golang.org/x/sync/errgroup"
)

// NewerEntry is a package whose branch1 revision is strictly newer than its
// branch2 revision
type NewerEntry struct {
	Name                  string
	Branch1VersionRelease string
	Branch2VersionRelease string
}

// ArchDiff is the comparison of one architecture. The slices are never nil.
type ArchDiff struct {
	Branch1Only  []string
	Branch2Only  []string
	Branch1Newer []NewerEntry
}

// Empty reports whether no category holds anything
func (d ArchDiff) Empty() bool {
	return len(d.Branch1Only) == 0 && len(d.Branch2Only) == 0 && len(d.Branch1Newer) == 0
}

// Summary holds category totals over all architectures
type Summary struct {
	Branch1Only  int
	Branch2Only  int
	Branch1Newer int
}

// Result is the comparison of two branches. It is not modified after All
// returns.
type Result struct {
	Branch1 string
	Branch2 string

	arches []string
	diffs  map[string]ArchDiff
}

// Architectures returns the compared architectures, sorted
func (r *Result) Architectures() []string {
	return append([]string(nil), r.arches...)
}

// Arch returns the comparison for one architecture
func (r *Result) Arch(arch string) (ArchDiff, bool) {
	d, ok := r.diffs[arch]
	return d, ok
}

// Summary totals every category
func (r *Result) Summary() Summary {
	var s Summary
	for _, d := range r.diffs {
		s.Branch1Only += len(d.Branch1Only)
		s.Branch2Only += len(d.Branch2Only)
		s.Branch1Newer += len(d.Branch1Newer)
	}
	return s
}

// Architecture compares the packages of arch in c1 and c2. Packages present
// in both are reported only when c1 carries the strictly newer revision.
func Architecture(c1, c2 *catalog.Catalog, arch string) ArchDiff {
	d := ArchDiff{
		Branch1Only:  []string{},
		Branch2Only:  []string{},
		Branch1Newer: []NewerEntry{},
	}

	// Names are sorted, so every list comes out sorted too.
	for _, name := range c1.Names(arch) {
		pkg1, _ := c1.Get(arch, name)
		pkg2, ok := c2.Get(arch, name)
		if !ok {
			d.Branch1Only = append(d.Branch1Only, name)
			continue
		}
		if version.CompareEVR(pkg1.Epoch, pkg1.Version, pkg1.Release, pkg2.Epoch, pkg2.Version, pkg2.Release) == version.Greater {
			d.Branch1Newer = append(d.Branch1Newer, NewerEntry{
				Name:                  name,
				Branch1VersionRelease: pkg1.VersionRelease(),
				Branch2VersionRelease: pkg2.VersionRelease(),
			})
		}
	}

	for _, name := range c2.Names(arch) {
		if _, ok := c1.Get(arch, name); !ok {
			d.Branch2Only = append(d.Branch2Only, name)
		}
	}

	return d
}

// All compares every architecture found in either catalog. An architecture
// missing from one side is compared against an empty package set.
func All(c1, c2 *catalog.Catalog) *Result {
	arches := unionSorted(c1.Architectures(), c2.Architectures())

	diffs := make([]ArchDiff, len(arches))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, arch := range arches {
		i, arch := i, arch
		g.Go(func() error {
			diffs[i] = Architecture(c1, c2, arch)
			return nil
		})
	}
	// nothing above can fail
	_ = g.Wait()

	r := &Result{
		Branch1: c1.Branch(),
		Branch2: c2.Branch(),
		arches:  arches,
		diffs:   make(map[string]ArchDiff, len(arches)),
	}
	for i, arch := range arches {
		r.diffs[arch] = diffs[i]
	}
	return r
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
