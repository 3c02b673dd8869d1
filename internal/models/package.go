package models

import (
	"encoding/json"
	"fmt"
)

// Package represents a binary package of one branch and architecture
type Package struct {
	// Identity
	Name         string
	Architecture string

	// Revision
	Epoch   int
	Version string
	Release string

	// Informational only, never compared
	Disttag   string
	BuildTime int64
	Source    string
}

// VersionRelease returns the canonical "version-release" display string
func (p Package) VersionRelease() string {
	return p.Version + "-" + p.Release
}

// String returns name-version-release.arch
func (p Package) String() string {
	return fmt.Sprintf("%s-%s.%s", p.Name, p.VersionRelease(), p.Architecture)
}

// RawRecord is a single package entry of a branch export
type RawRecord struct {
	Name      string `json:"name"`
	Epoch     int    `json:"epoch"`
	Version   string `json:"version"`
	Release   string `json:"release"`
	Arch      string `json:"arch"`
	Disttag   string `json:"disttag,omitempty"`
	BuildTime int64  `json:"buildtime,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Listing is the branch export document returned by rdb
type Listing struct {
	RequestArgs json.RawMessage `json:"request_args,omitempty"`
	Length      int             `json:"length"`
	Packages    []RawRecord     `json:"packages"`
}
