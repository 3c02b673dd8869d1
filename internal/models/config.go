package models

import "time"

// Result categories selectable for display
const (
	CategoryBranch1Only  = "branch1_only"
	CategoryBranch2Only  = "branch2_only"
	CategoryBranch1Newer = "branch1_newer"
	CategoryAll          = "all"
)

// SourceConfig contains configuration shared by every command that fetches listings
type SourceConfig struct {
	BaseURL   string        // rdb API root, e.g. https://rdb.altlinux.org/api
	Timeout   time.Duration // per request
	UserAgent string

	// Snapshot verification
	KeyringPath string
}

// CompareConfig contains configuration for a branch comparison
type CompareConfig struct {
	SourceConfig

	Branch1 string
	Branch2 string

	Category       string
	JSON           bool
	Tree           bool
	ShowBranchJSON bool
}

// SnapshotConfig contains configuration for writing a listing snapshot
type SnapshotConfig struct {
	SourceConfig

	Reference  string
	OutputPath string

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
