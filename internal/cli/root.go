package cli

import (
	"github.com/ralt/rdbdiff/internal/fetcher"
	"github.com/ralt/rdbdiff/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is reported by --version and sent in the User-Agent
var Version = "1.0.0"

const (
	defaultBranch1 = "sisyphus"
	defaultBranch2 = "p10"
)

// NewRootCmd creates the root command, which compares two branches
func NewRootCmd() *cobra.Command {
	var config models.CompareConfig

	rootCmd := &cobra.Command{
		Use:   "rdbdiff [branch1] [branch2]",
		Short: "Compare the binary package lists of two ALT Linux branches",
		Long: `Rdbdiff fetches the binary package lists of two branches and reports,
per architecture, the packages found only in the first branch, the packages
found only in the second branch and the packages whose version-release is
newer in the first branch.

A branch can be:
  - an rdb branch name (sisyphus, p10, ...)
  - file:<path> to read a snapshot written by "rdbdiff snapshot"
  - dir:<path> to read the headers of the RPM files in a directory`,
		Example: `  rdbdiff sisyphus p10
  rdbdiff p10 p9 -c branch1_only
  rdbdiff -s sisyphus
  rdbdiff -j p9 p10
  rdbdiff file:p10.json.xz dir:/srv/mirror/p10 -c branch1_newer`,
		Args:          cobra.MaximumNArgs(2),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Branch1, config.Branch2 = defaultBranch1, defaultBranch2
			if len(args) > 0 {
				config.Branch1 = args[0]
			}
			if len(args) > 1 {
				config.Branch2 = args[1]
			}

			if err := validateCompareConfig(&config); err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", config)

			return runCompare(cmd.Context(), cmd.OutOrStdout(), &config)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Output flags
	rootCmd.Flags().StringVarP(&config.Category, "category", "c", models.CategoryAll,
		"Category to display: branch1_only, branch2_only, branch1_newer or all")
	rootCmd.Flags().BoolVarP(&config.JSON, "json", "j", false, "Print the comparison as JSON")
	rootCmd.Flags().BoolVarP(&config.Tree, "tree", "t", false, "Print the comparison as a tree (default unless --json)")
	rootCmd.Flags().BoolVarP(&config.ShowBranchJSON, "show-branch-json", "s", false,
		"Print the package list of branch1 as JSON and skip the comparison")

	addSourceFlags(rootCmd, &config.SourceConfig)

	// Add subcommands
	rootCmd.AddCommand(NewSnapshotCmd())

	return rootCmd
}

// addSourceFlags registers the flags that configure where listings come from
func addSourceFlags(cmd *cobra.Command, config *models.SourceConfig) {
	cmd.Flags().StringVar(&config.BaseURL, "base-url", fetcher.DefaultBaseURL, "Base URL of the rdb API")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", fetcher.DefaultTimeout, "Timeout of each rdb request")
	cmd.Flags().StringVar(&config.KeyringPath, "keyring", "",
		"Public keyring; when set, file: snapshots need a valid detached signature")
	config.UserAgent = fetcher.DefaultUserAgent + "/" + Version
}
