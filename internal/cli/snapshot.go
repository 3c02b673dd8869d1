package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/ralt/rdbdiff/internal/fetcher"
	"github.com/ralt/rdbdiff/internal/models"
	"github.com/ralt/rdbdiff/internal/signer"
	"github.com/ralt/rdbdiff/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSnapshotCmd creates the snapshot command
func NewSnapshotCmd() *cobra.Command {
	var config models.SnapshotConfig

	cmd := &cobra.Command{
		Use:   "snapshot <branch>",
		Short: "Save the package list of a branch to a file",
		Long: `Fetches the package list of a branch and writes it to a file that can be
compared later as file:<path>. The output is compressed according to its
extension (.gz, .xz, .zst) and, with a GPG key, signed with a detached
armored signature stored next to it as <path>.asc.`,
		Example: `  rdbdiff snapshot p10 -o p10.json.xz
  rdbdiff snapshot sisyphus -o sisyphus.json.zst -k private.asc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Reference = args[0]

			if err := validateSnapshotConfig(&config); err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", config)

			return runSnapshot(cmd.Context(), &config)
		},
	}

	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "", "Snapshot file to write")

	// GPG signing flags
	cmd.Flags().StringVarP(&config.GPGKeyPath, "gpg-key", "k", "", "Path to GPG private key")
	cmd.Flags().StringVarP(&config.GPGPassphrase, "gpg-passphrase", "p", "", "GPG key passphrase")

	addSourceFlags(cmd, &config.SourceConfig)

	return cmd
}

func validateSnapshotConfig(config *models.SnapshotConfig) error {
	if config.Reference == "" {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("branch is required"),
		}
	}

	if config.OutputPath == "" {
		return &models.DiffError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("output is required"),
		}
	}

	return validateSourceConfig(&config.SourceConfig)
}

func runSnapshot(ctx context.Context, config *models.SnapshotConfig) error {
	// Load the signer first so a bad key fails before the download
	var gpgSigner signer.Signer
	if config.GPGKeyPath != "" {
		s, err := signer.NewGPGSigner(config.GPGKeyPath, config.GPGPassphrase)
		if err != nil {
			return &models.DiffError{
				Type: models.ErrSignature,
				Err:  fmt.Errorf("failed to initialize GPG signer: %w", err),
			}
		}
		logrus.Info("GPG signer initialized")
		gpgSigner = s
	}

	router, err := newRouter(&config.SourceConfig)
	if err != nil {
		return err
	}

	listing, err := router.Fetch(ctx, config.Reference)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(listing)
	if err != nil {
		return &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: config.Reference,
			Err:    err,
		}
	}

	compression := utils.CompressionFromPath(config.OutputPath)
	data, err := utils.Compress(compression, raw)
	if err != nil {
		return &models.DiffError{
			Type:   models.ErrEncoding,
			Branch: config.Reference,
			Err:    fmt.Errorf("failed to compress snapshot: %w", err),
		}
	}

	if err := utils.WriteFile(config.OutputPath, data, 0644); err != nil {
		return &models.DiffError{
			Type: models.ErrOutput,
			Err:  fmt.Errorf("failed to write snapshot: %w", err),
		}
	}
	logrus.Infof("Wrote %d packages to %s (%s, sha256 %s)",
		len(listing.Packages), config.OutputPath,
		humanize.Bytes(uint64(len(data))), utils.CalculateChecksum(data, "sha256"))

	if gpgSigner == nil {
		return nil
	}

	sig, err := gpgSigner.SignDetached(data)
	if err != nil {
		return &models.DiffError{
			Type: models.ErrSignature,
			Err:  fmt.Errorf("failed to sign snapshot: %w", err),
		}
	}

	sigPath := config.OutputPath + fetcher.SignatureSuffix
	if err := utils.WriteFile(sigPath, sig, 0644); err != nil {
		return &models.DiffError{
			Type: models.ErrOutput,
			Err:  fmt.Errorf("failed to write signature: %w", err),
		}
	}
	logrus.Infof("Signed snapshot: %s", sigPath)
	return nil
}
