// Package formatter turns a comparison result into its JSON wire document or
// a human readable tree.
package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/ralt/rdbdiff/internal/diff"
	"github.com/ralt/rdbdiff/internal/models"
)

// Document is the JSON wire form of a comparison
type Document struct {
	Architectures map[string]ArchDocument `json:"architectures"`
	Summary       SummaryDocument         `json:"summary"`
}

// ArchDocument is the JSON form of one architecture's comparison
type ArchDocument struct {
	Branch1Only  []string        `json:"branch1_only"`
	Branch2Only  []string        `json:"branch2_only"`
	Branch1Newer []NewerDocument `json:"branch1_newer"`
}

// NewerDocument is the JSON form of a branch1-newer entry
type NewerDocument struct {
	Name                  string `json:"name"`
	Branch1VersionRelease string `json:"branch1_version_release"`
	Branch2VersionRelease string `json:"branch2_version_release"`
}

// SummaryDocument is the JSON form of the category totals
type SummaryDocument struct {
	TotalBranch1Only  int `json:"total_branch1_only_count"`
	TotalBranch2Only  int `json:"total_branch2_only_count"`
	TotalBranch1Newer int `json:"total_branch1_newer_count"`
}

// NewDocument converts a result into its wire form
func NewDocument(r *diff.Result) Document {
	doc := Document{
		Architectures: make(map[string]ArchDocument),
	}
	for _, arch := range r.Architectures() {
		d, _ := r.Arch(arch)
		ad := ArchDocument{
			Branch1Only:  append([]string{}, d.Branch1Only...),
			Branch2Only:  append([]string{}, d.Branch2Only...),
			Branch1Newer: make([]NewerDocument, 0, len(d.Branch1Newer)),
		}
		for _, e := range d.Branch1Newer {
			ad.Branch1Newer = append(ad.Branch1Newer, NewerDocument{
				Name:                  e.Name,
				Branch1VersionRelease: e.Branch1VersionRelease,
				Branch2VersionRelease: e.Branch2VersionRelease,
			})
		}
		doc.Architectures[arch] = ad
	}

	s := r.Summary()
	doc.Summary = SummaryDocument{
		TotalBranch1Only:  s.Branch1Only,
		TotalBranch2Only:  s.Branch2Only,
		TotalBranch1Newer: s.Branch1Newer,
	}
	return doc
}

// Serialize encodes a result as indented JSON. Architecture keys come out
// sorted.
func Serialize(r *diff.Result) ([]byte, error) {
	out, err := json.MarshalIndent(NewDocument(r), "", "  ")
	if err != nil {
		return nil, &models.DiffError{
			Type: models.ErrEncoding,
			Err:  fmt.Errorf("failed to encode comparison: %w", err),
		}
	}
	return append(out, '\n'), nil
}
