package sync

import (
	"context"
	"errors"
	"time"

	"github.com/opensquare-network/referenda-syncer/src/opensquare"
	"github.com/opensquare-network/referenda-syncer/src/subsquare"
	"github.com/opensquare-network/referenda-syncer/src/utils/config"
	"github.com/opensquare-network/referenda-syncer/src/utils/model"
	"github.com/opensquare-network/referenda-syncer/src/utils/monitoring"
	"github.com/opensquare-network/referenda-syncer/src/utils/monitoring/report"
	"github.com/opensquare-network/referenda-syncer/src/utils/task"
)

// Syncer runs the mirror cycle: fetch referenda that are not in the
// ledger yet, then for each one in ascending order snapshot the chain,
// sign the proposal and publish it, committing the record only after
// the destination accepted it.
//
// Cycles are single flight. The next interval starts counting once the
// previous cycle returned. Failures of one referendum never block the
// following ones and nothing is recorded for the failed item, so the
// next cycle picks it up again.
type Syncer struct {
	*task.Task

	monitor   monitoring.Monitor
	store     Ledger
	fetcher   Fetcher
	snapshots SnapshotProvider
	signer    ProposalSigner
	publisher Publisher

	// Committed records, consumed by optional notification sinks
	Output chan *model.PublishedProposal
}

func NewSyncer(config *config.Config) (self *Syncer) {
	self = new(Syncer)

	self.Output = make(chan *model.PublishedProposal, 100)

	self.Task = task.NewTask(config, "syncer").
		WithPeriodicSubtaskFunc(config.Syncer.Interval, self.runCycle).
		WithOnAfterStop(func() {
			close(self.Output)
		})
	return
}

func (self *Syncer) WithMonitor(monitor monitoring.Monitor) *Syncer {
	self.monitor = monitor
	return self
}

func (self *Syncer) WithStore(store Ledger) *Syncer {
	self.store = store
	return self
}

func (self *Syncer) WithFetcher(fetcher Fetcher) *Syncer {
	self.fetcher = fetcher
	return self
}

func (self *Syncer) WithSnapshots(snapshots SnapshotProvider) *Syncer {
	self.snapshots = snapshots
	return self
}

func (self *Syncer) WithSigner(signer ProposalSigner) *Syncer {
	self.signer = signer
	return self
}

func (self *Syncer) WithPublisher(publisher Publisher) *Syncer {
	self.publisher = publisher
	return self
}

func (self *Syncer) runCycle() error {
	ctx, cancel := context.WithTimeout(self.Ctx, self.Config.Syncer.CycleTimeout)
	defer cancel()

	run := model.NewSyncRun()
	syncerReport := self.monitor.GetReport().Syncer

	defer func() {
		run.FinishedAt = time.Now().UTC()
		err := self.store.SaveSyncRun(self.Ctx, run)
		if err != nil {
			self.Log.WithError(err).Error("Failed to save the sync run record")
			syncerReport.Errors.DbErrors.Inc()
		}
		syncerReport.State.CyclesFinished.Inc()
		syncerReport.State.LastCycleTimestamp.Store(time.Now().Unix())
	}()

	// Resume hint only, correctness comes from the per row dedup
	afterIndex, err := self.store.MaxPublishedIndex(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to load the resume index")
		syncerReport.Errors.DbErrors.Inc()
		run.LastError = err.Error()
		return nil
	}

	referenda, err := self.fetcher.FetchSince(ctx, afterIndex, self.Config.Syncer.PageSize, self.Config.Syncer.MaxPages)
	if err != nil {
		self.Log.WithError(err).Error("Failed to fetch referenda")
		if errors.Is(err, subsquare.ErrMalformedResponse) {
			syncerReport.Errors.MalformedFetchErrors.Inc()
		} else {
			syncerReport.Errors.FetchErrors.Inc()
		}
		run.LastError = err.Error()
		return nil
	}

	run.ReferendaFetched = len(referenda)
	syncerReport.State.ReferendaFetched.Add(uint64(len(referenda)))

	for i := range referenda {
		if ctx.Err() != nil {
			run.LastError = ctx.Err().Error()
			break
		}
		self.syncOne(ctx, run, syncerReport, &referenda[i])
	}

	self.Log.WithField("published", run.ProposalsPublished).
		WithField("skipped", run.ReferendaSkipped).
		WithField("failed", run.ReferendaFailed).
		Info("Sync cycle finished")
	return nil
}

func (self *Syncer) syncOne(ctx context.Context, run *model.SyncRun, syncerReport *report.SyncerReport, referendum *subsquare.Referendum) {
	log := self.Log.WithField("referendum", referendum.ReferendumIndex)

	fail := func(err error, message string) {
		log.WithError(err).Error(message)
		run.ReferendaFailed++
		run.LastError = err.Error()
		syncerReport.State.ReferendaFailed.Inc()
	}

	published, err := self.store.IsPublished(ctx, referendum.ReferendumIndex)
	if err != nil {
		syncerReport.Errors.DbErrors.Inc()
		fail(err, "Failed to check the ledger")
		return
	}
	if published {
		run.ReferendaSkipped++
		syncerReport.State.ReferendaSkipped.Inc()
		return
	}

	run.ReferendaNew++
	syncerReport.State.ReferendaNew.Inc()

	// Fresh snapshot for every proposal, snapshots are never reused
	snapshot, err := self.snapshots.GetSnapshot(ctx)
	if err != nil {
		syncerReport.Errors.SnapshotErrors.Inc()
		fail(err, "Failed to snapshot the chain state")
		return
	}

	proposal := opensquare.NewProposal(self.Config, referendum, snapshot, time.Now())
	canonical, err := proposal.CanonicalJSON()
	if err != nil {
		syncerReport.Errors.SigningErrors.Inc()
		fail(err, "Failed to encode the proposal")
		return
	}

	signature, err := self.signer.Sign(canonical)
	if err != nil {
		syncerReport.Errors.SigningErrors.Inc()
		fail(err, "Failed to sign the proposal")
		return
	}

	cid, err := self.publisher.PublishProposal(ctx, canonical, self.signer.Address(), signature)
	switch {
	case err == nil:
		// pass through
	case errors.Is(err, opensquare.ErrAlreadyExists):
		// Destination has it, usually after a commit failure on a
		// previous cycle. Record it so it is never sent again.
		log.Info("Proposal already exists on the destination")
		cid = ""
	case errors.Is(err, opensquare.ErrRejected):
		syncerReport.Errors.RejectedProposals.Inc()
		fail(err, "Proposal rejected by the destination")
		return
	default:
		syncerReport.Errors.PublishErrors.Inc()
		fail(err, "Failed to publish the proposal")
		return
	}

	record := &model.PublishedProposal{
		ReferendumIndex: referendum.ReferendumIndex,
		Space:           self.Config.OpenSquare.Space,
		Title:           proposal.Title,
		SnapshotHeight:  snapshot.Height,
		SnapshotHash:    snapshot.Hash,
		ProposalCid:     cid,
		SignerAddress:   self.signer.Address(),
		PublishedAt:     time.Now().UTC(),
	}

	err = self.store.RecordPublished(ctx, record)
	if err != nil {
		// The destination already accepted it. Next cycle republish
		// returns already-exists and lands here again with a working db.
		syncerReport.Errors.CommitErrors.Inc()
		fail(err, "Failed to commit a published proposal")
		return
	}

	run.ProposalsPublished++
	syncerReport.State.ProposalsPublished.Inc()
	syncerReport.State.LastPublishedIndex.Store(uint64(referendum.ReferendumIndex))
	syncerReport.State.LastSnapshotHeight.Store(snapshot.Height)

	log.WithField("cid", cid).WithField("height", snapshot.Height).Info("Published proposal")

	select {
	case self.Output <- record:
	default:
		log.Warn("Notification buffer full, dropping the notification")
	}
}
