package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Manifest is the internal representation of the immutable ballot/contest
// definition a tally is accumulated against.
type Manifest struct {
	ElectionScopeID string               `json:"election_scope_id"`
	SpecVersion     string               `json:"spec_version"`
	Contests        []ContestDescription `json:"contests"`
}

type ContestDescription struct {
	ObjectID      string                 `json:"object_id"`
	SequenceOrder int                    `json:"sequence_order"`
	Selections    []SelectionDescription `json:"ballot_selections"`
}

type SelectionDescription struct {
	ObjectID      string `json:"object_id"`
	SequenceOrder int    `json:"sequence_order"`
	CandidateID   string `json:"candidate_id"`
}

// DecodeManifest parses a serialized manifest into the internal
// representation the tally engine consumes.
func DecodeManifest(raw json.RawMessage) (Manifest, error) {
	if len(raw) == 0 {
		return Manifest{}, errors.New("manifest document is empty")
	}
	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if len(manifest.Contests) == 0 {
		return Manifest{}, errors.New("manifest declares no contests")
	}
	for _, contest := range manifest.Contests {
		if contest.ObjectID == "" {
			return Manifest{}, errors.New("manifest contest is missing an object id")
		}
		if len(contest.Selections) == 0 {
			return Manifest{}, fmt.Errorf("contest %s declares no selections", contest.ObjectID)
		}
		for _, selection := range contest.Selections {
			if selection.ObjectID == "" {
				return Manifest{}, fmt.Errorf("contest %s has a selection without an object id", contest.ObjectID)
			}
		}
	}
	return manifest, nil
}
