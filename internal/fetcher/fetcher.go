// Package fetcher retrieves branch package listings from the rdb API, from
// snapshot files or from directories of RPM files.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ralt/rdbdiff/internal/models"
)

// Reference prefixes understood by Router
const (
	PrefixFile = "file:"
	PrefixDir  = "dir:"
)

// Fetcher retrieves the package listing named by ref
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (*models.Listing, error)
}

// Router dispatches a reference to the source it names: "file:<path>" reads a
// snapshot, "dir:<path>" scans RPM files and anything else is an rdb branch.
type Router struct {
	RDB      Fetcher
	Snapshot Fetcher
	Dir      Fetcher
}

// Fetch implements Fetcher
func (r *Router) Fetch(ctx context.Context, ref string) (*models.Listing, error) {
	var (
		f    Fetcher
		kind string
	)
	switch {
	case strings.HasPrefix(ref, PrefixFile):
		f, kind, ref = r.Snapshot, "snapshot", strings.TrimPrefix(ref, PrefixFile)
	case strings.HasPrefix(ref, PrefixDir):
		f, kind, ref = r.Dir, "directory", strings.TrimPrefix(ref, PrefixDir)
	default:
		f, kind = r.RDB, "rdb"
	}

	if f == nil {
		return nil, &models.DiffError{
			Type:   models.ErrInvalidConfig,
			Branch: ref,
			Err:    fmt.Errorf("no %s source configured", kind),
		}
	}
	return f.Fetch(ctx, ref)
}

// DecodeListing decodes a branch export document. The payload must be valid
// UTF-8 JSON holding a packages array.
func DecodeListing(branch string, data []byte) (*models.Listing, error) {
	if len(data) == 0 {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: branch,
			Err:    fmt.Errorf("empty package listing"),
		}
	}
	if !utf8.Valid(data) {
		return nil, &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: branch,
			Err:    fmt.Errorf("package listing is not valid UTF-8"),
		}
	}

	var listing models.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: branch,
			Err:    fmt.Errorf("failed to decode package listing: %w", err),
		}
	}
	if listing.Packages == nil {
		return nil, &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: branch,
			Err:    fmt.Errorf("package listing has no packages array"),
		}
	}
	return &listing, nil
}
