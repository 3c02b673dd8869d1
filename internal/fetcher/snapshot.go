package fetcher

import (
	"context"
	"fmt"
	"os"

	"github.com/ralt/rdbdiff/internal/models"
	"github.com/ralt/rdbdiff/internal/signer"
	"github.com/ralt/rdbdiff/internal/utils"
	"github.com/sirupsen/logrus"
)

// SignatureSuffix is appended to a snapshot path to find its detached signature
const SignatureSuffix = ".asc"

// SnapshotSource reads listings written by the snapshot command. With a
// verifier set, every snapshot must carry a valid detached signature.
type SnapshotSource struct {
	verifier signer.Verifier
}

// NewSnapshotSource creates a snapshot source; verifier may be nil
func NewSnapshotSource(verifier signer.Verifier) *SnapshotSource {
	return &SnapshotSource{verifier: verifier}
}

// Fetch implements Fetcher, ref being the snapshot path
func (s *SnapshotSource) Fetch(ctx context.Context, path string) (*models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logrus.Infof("Reading snapshot %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrFetch,
			Branch: path,
			Err:    err,
		}
	}

	if s.verifier != nil {
		if err := s.verify(path, data); err != nil {
			return nil, err
		}
	}

	raw, err := utils.Decompress(utils.CompressionFromPath(path), data)
	if err != nil {
		return nil, &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: path,
			Err:    fmt.Errorf("failed to decompress snapshot: %w", err),
		}
	}

	listing, err := DecodeListing(path, raw)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Read %d packages from %s", len(listing.Packages), path)
	return listing, nil
}

func (s *SnapshotSource) verify(path string, data []byte) error {
	sig, err := os.ReadFile(path + SignatureSuffix)
	if err != nil {
		return &models.DiffError{
			Type:   models.ErrSignature,
			Branch: path,
			Err:    fmt.Errorf("missing detached signature: %w", err),
		}
	}

	who, err := s.verifier.VerifyDetached(data, sig)
	if err != nil {
		return &models.DiffError{
			Type:   models.ErrSignature,
			Branch: path,
			Err:    err,
		}
	}
	logrus.Infof("Snapshot %s signed by %s", path, who)
	return nil
}
