package fetcher

import (
	"context"
	"fmt"

	"github.com/ralt/rdbdiff/internal/models"
	"github.com/ralt/rdbdiff/internal/rpm"
	"github.com/ralt/rdbdiff/internal/scanner"
	"github.com/sirupsen/logrus"
)

// DirSource builds a listing from the binary RPM files under a directory,
// e.g. a local mirror of a branch.
type DirSource struct {
	scanner scanner.Scanner
	parse   func(path string) (*models.RawRecord, error)
}

// NewDirSource creates a directory source backed by the filesystem scanner
func NewDirSource() *DirSource {
	return &DirSource{
		scanner: scanner.NewFileSystemScanner(),
		parse:   rpm.ParsePackage,
	}
}

// Fetch implements Fetcher, ref being the directory path. An unreadable
// package fails the whole listing.
func (d *DirSource) Fetch(ctx context.Context, dir string) (*models.Listing, error) {
	logrus.Infof("Scanning directory: %s", dir)
	scanned, err := d.scanner.Scan(ctx, dir)
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: dir,
			Err:    err,
		}
	}

	listing := &models.Listing{
		Packages: make([]models.RawRecord, 0, len(scanned)),
	}
	for _, p := range scanned {
		logrus.Debugf("Parsing %s package: %s", p.Type, p.Path)
		record, err := d.parse(p.Path)
		if err != nil {
			return nil, &models.DiffError{
				Type:    models.ErrFetch,
				Branch:  dir,
				Package: p.Path,
				Err:     fmt.Errorf("failed to parse package: %w", err),
			}
		}
		listing.Packages = append(listing.Packages, *record)
	}
	listing.Length = len(listing.Packages)
	return listing, nil
}
