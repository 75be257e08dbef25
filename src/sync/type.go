package sync

import (
	"context"

	"github.com/opensquare-network/referenda-syncer/src/subscan"
	"github.com/opensquare-network/referenda-syncer/src/subsquare"
	"github.com/opensquare-network/referenda-syncer/src/utils/model"
)

// Lists referenda from the governance source
type Fetcher interface {
	FetchSince(ctx context.Context, afterIndex int64, pageSize, maxPages int) ([]subsquare.Referendum, error)
}

// Resolves the finalized chain state proposals are signed against
type SnapshotProvider interface {
	GetSnapshot(ctx context.Context) (*subscan.Snapshot, error)
}

// Signs canonical proposal bytes with the publishing identity
type ProposalSigner interface {
	Sign(message []byte) ([]byte, error)
	Address() string
}

// Sends signed proposals to the voting space
type Publisher interface {
	PublishProposal(ctx context.Context, canonical []byte, address string, signature []byte) (cid string, err error)
}

// Durable record of what was already published
type Ledger interface {
	IsPublished(ctx context.Context, referendumIndex uint32) (bool, error)
	RecordPublished(ctx context.Context, proposal *model.PublishedProposal) error
	MaxPublishedIndex(ctx context.Context) (int64, error)
	SaveSyncRun(ctx context.Context, run *model.SyncRun) error
}
