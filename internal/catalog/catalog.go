// Package catalog indexes a branch's package listing by architecture and name.
package catalog

import (
	"fmt"
	"sort"

	"github.com/ralt/rdbdiff/internal/models"
	"github.com/sirupsen/logrus"
)

// Catalog is the per-architecture package index of one branch. It is never
// modified after Build returns and may be shared between goroutines.
type Catalog struct {
	branch string
	arches map[string]map[string]models.Package
	count  int
}

// Build indexes raw records of a branch. A record missing any of name,
// version, release or arch is rejected, as is a name listed twice for the
// same arch with a different epoch, version or release. Repeated identical
// records are collapsed.
func Build(branch string, records []models.RawRecord) (*Catalog, error) {
	c := &Catalog{
		branch: branch,
		arches: make(map[string]map[string]models.Package),
	}

	for i, r := range records {
		if err := validateRecord(r); err != nil {
			return nil, &models.DiffError{
				Type:    models.ErrMalformedRecord,
				Branch:  branch,
				Package: recordIdentity(i, r),
				Err:     err,
			}
		}

		pkg := models.Package{
			Name:         r.Name,
			Architecture: r.Arch,
			Epoch:        r.Epoch,
			Version:      r.Version,
			Release:      r.Release,
			Disttag:      r.Disttag,
			BuildTime:    r.BuildTime,
			Source:       r.Source,
		}

		byName, ok := c.arches[pkg.Architecture]
		if !ok {
			byName = make(map[string]models.Package)
			c.arches[pkg.Architecture] = byName
		}

		if existing, ok := byName[pkg.Name]; ok {
			if sameRevision(existing, pkg) {
				logrus.Debugf("Skipping repeated record for %s in %s", pkg, branch)
				continue
			}
			return nil, &models.DiffError{
				Type:    models.ErrDuplicatePackage,
				Branch:  branch,
				Package: pkg.Name + "." + pkg.Architecture,
				Err:     fmt.Errorf("listed as both %d:%s and %d:%s", existing.Epoch, existing.VersionRelease(), pkg.Epoch, pkg.VersionRelease()),
			}
		}

		byName[pkg.Name] = pkg
		c.count++
	}

	logrus.Debugf("Indexed %d packages in %d architectures for %s", c.count, len(c.arches), branch)
	return c, nil
}

// Branch returns the branch name the catalog was built for
func (c *Catalog) Branch() string {
	return c.branch
}

// Len returns the number of distinct packages across all architectures
func (c *Catalog) Len() int {
	return c.count
}

// Architectures returns the architectures present, sorted
func (c *Catalog) Architectures() []string {
	arches := make([]string, 0, len(c.arches))
	for arch := range c.arches {
		arches = append(arches, arch)
	}
	sort.Strings(arches)
	return arches
}

// Names returns the package names present for arch, sorted. An unknown
// architecture has no names.
func (c *Catalog) Names(arch string) []string {
	byName := c.arches[arch]
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a package by architecture and name
func (c *Catalog) Get(arch, name string) (models.Package, bool) {
	pkg, ok := c.arches[arch][name]
	return pkg, ok
}

func validateRecord(r models.RawRecord) error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Version == "" {
		missing = append(missing, "version")
	}
	if r.Release == "" {
		missing = append(missing, "release")
	}
	if r.Arch == "" {
		missing = append(missing, "arch")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %v", missing)
	}
	return nil
}

// recordIdentity names a record as well as its fields allow
func recordIdentity(index int, r models.RawRecord) string {
	if r.Name == "" {
		return fmt.Sprintf("record #%d", index)
	}
	return fmt.Sprintf("record #%d (%s)", index, r.Name)
}

func sameRevision(a, b models.Package) bool {
	return a.Epoch == b.Epoch && a.Version == b.Version && a.Release == b.Release
}
