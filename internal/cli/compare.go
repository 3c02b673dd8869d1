package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/ralt/rdbdiff/internal/catalog"
	"github.com/ralt/rdbdiff/internal/diff"
	"github.com/ralt/rdbdiff/internal/fetcher"
	"github.com/ralt/rdbdiff/internal/formatter"
	"github.com/ralt/rdbdiff/internal/models"
	"github.com/ralt/rdbdiff/internal/signer"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func validateSourceConfig(config *models.SourceConfig) error {
	u, err := url.Parse(config.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("base-url must be an http(s) URL, got %q", config.BaseURL),
		}
	}

	if config.Timeout <= 0 {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("timeout must be positive"),
		}
	}

	return nil
}

func validateCompareConfig(config *models.CompareConfig) error {
	if config.Branch1 == "" {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("branch1 is required"),
		}
	}

	if config.Branch2 == "" && !config.ShowBranchJSON {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("branch2 is required"),
		}
	}

	if _, err := formatter.ParseCategory(config.Category); err != nil {
		return err
	}

	if config.Branch1 == config.Branch2 && !config.ShowBranchJSON {
		logrus.Warnf("Comparing branch %s with itself", config.Branch1)
	}

	return validateSourceConfig(&config.SourceConfig)
}

// newRouter wires every listing source from the configuration
func newRouter(config *models.SourceConfig) (*fetcher.Router, error) {
	var verifier signer.Verifier
	if config.KeyringPath != "" {
		v, err := signer.NewGPGVerifier(config.KeyringPath)
		if err != nil {
			return nil, &models.DiffError{
				Type: models.ErrSignature,
				Err:  fmt.Errorf("failed to load keyring: %w", err),
			}
		}
		logrus.Infof("Snapshots will be verified against %s", config.KeyringPath)
		verifier = v
	}

	return &fetcher.Router{
		RDB:      fetcher.NewRDBClient(config.BaseURL, config.UserAgent, config.Timeout),
		Snapshot: fetcher.NewSnapshotSource(verifier),
		Dir:      fetcher.NewDirSource(),
	}, nil
}

func runCompare(ctx context.Context, out io.Writer, config *models.CompareConfig) error {
	router, err := newRouter(&config.SourceConfig)
	if err != nil {
		return err
	}

	if config.ShowBranchJSON {
		return showBranch(ctx, out, router, config.Branch1)
	}

	// Step 1: Fetch both branches, the first failure cancels the other fetch
	refs := []string{config.Branch1, config.Branch2}
	listings := make([]*models.Listing, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			listing, err := router.Fetch(gctx, ref)
			if err != nil {
				return err
			}
			listings[i] = listing
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Step 2: Index them
	catalogs := make([]*catalog.Catalog, len(refs))
	for i, ref := range refs {
		c, err := catalog.Build(ref, listings[i].Packages)
		if err != nil {
			return err
		}
		logrus.Infof("Indexed %s packages of %s across %d architectures",
			humanize.Comma(int64(c.Len())), ref, len(c.Architectures()))
		catalogs[i] = c
	}

	// Step 3: Compare
	logrus.Infof("Comparing %s with %s", config.Branch1, config.Branch2)
	result := diff.All(catalogs[0], catalogs[1])

	// Step 4: Print
	if config.JSON {
		data, err := formatter.Serialize(result)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return &models.DiffError{Type: models.ErrOutput, Err: err}
		}
		return nil
	}

	categories, err := formatter.ParseCategory(config.Category)
	if err != nil {
		return err
	}
	if err := formatter.RenderTree(out, result, categories); err != nil {
		return &models.DiffError{Type: models.ErrOutput, Err: err}
	}
	return nil
}

// showBranch prints the listing of a single branch without comparing it
func showBranch(ctx context.Context, out io.Writer, router fetcher.Fetcher, ref string) error {
	logrus.Infof("Showing package list of %s", ref)
	listing, err := router.Fetch(ctx, ref)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: ref,
			Err:    err,
		}
	}

	if _, err := out.Write(append(data, '\n')); err != nil {
		return &models.DiffError{Type: models.ErrOutput, Err: err}
	}
	return nil
}
