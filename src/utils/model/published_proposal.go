package model

import (
	"encoding/json"
	"time"
)

const (
	TablePublishedProposal = "published_proposals"
)

// One row per referendum ever published to the voting space.
// Its existence is the dedup predicate: rows are created exactly once,
// never updated, never deleted.
type PublishedProposal struct {
	ID int

	// Source referendum index
	ReferendumIndex uint32

	// Destination space
	Space string

	// Title as published, including the track prefix
	Title string

	// Chain state the proposal was signed against
	SnapshotHeight uint64
	SnapshotHash   string

	// Identifier assigned by the voting platform. Empty when the
	// platform reported the proposal already existed.
	ProposalCid string

	// SS58 address of the publishing identity
	SignerAddress string

	PublishedAt time.Time
}

func (PublishedProposal) TableName() string {
	return TablePublishedProposal
}

// Payload sent to notification channels
func (self *PublishedProposal) MarshalBinary() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"referendum_index": self.ReferendumIndex,
		"space":            self.Space,
		"title":            self.Title,
		"snapshot_height":  self.SnapshotHeight,
		"snapshot_hash":    self.SnapshotHash,
		"proposal_cid":     self.ProposalCid,
		"published_at":     self.PublishedAt.UTC().Format(time.RFC3339),
	})
}
