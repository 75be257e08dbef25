package report

import (
	"go.uber.org/atomic"
)

type SyncerErrors struct {
	FetchErrors          atomic.Int64 `json:"fetch"`
	MalformedFetchErrors atomic.Int64 `json:"fetch_malformed"`
	SnapshotErrors       atomic.Int64 `json:"snapshot"`
	SigningErrors        atomic.Int64 `json:"signing"`
	PublishErrors        atomic.Int64 `json:"publish"`
	RejectedProposals    atomic.Int64 `json:"rejected_proposals"`
	DbErrors             atomic.Int64 `json:"db"`

	// Destination accepted the proposal but the local record failed.
	// The next cycle retries and relies on the idempotent upsert.
	CommitErrors atomic.Int64 `json:"commit"`
}

type SyncerState struct {
	CyclesFinished     atomic.Uint64 `json:"cycles_finished"`
	LastCycleTimestamp atomic.Int64  `json:"last_cycle_timestamp"`

	ReferendaFetched   atomic.Uint64 `json:"referenda_fetched"`
	ReferendaNew       atomic.Uint64 `json:"referenda_new"`
	ProposalsPublished atomic.Uint64 `json:"proposals_published"`
	ReferendaSkipped   atomic.Uint64 `json:"referenda_skipped"`
	ReferendaFailed    atomic.Uint64 `json:"referenda_failed"`

	LastSnapshotHeight       atomic.Uint64  `json:"last_snapshot_height"`
	LastPublishedIndex       atomic.Uint64  `json:"last_published_index"`
	AveragePublishedPerCycle atomic.Float64 `json:"average_published_per_cycle"`
}

type SyncerReport struct {
	State  SyncerState  `json:"state"`
	Errors SyncerErrors `json:"errors"`
}
