package model

import (
	"time"

	"github.com/rs/xid"
)

const (
	TableSyncRun = "sync_runs"
)

// Diagnostic record of one sync cycle
type SyncRun struct {
	ID string

	StartedAt  time.Time
	FinishedAt time.Time

	ReferendaFetched   int
	ReferendaNew       int
	ProposalsPublished int
	ReferendaSkipped   int
	ReferendaFailed    int

	LastError string
}

func (SyncRun) TableName() string {
	return TableSyncRun
}

func NewSyncRun() *SyncRun {
	return &SyncRun{
		ID:        xid.New().String(),
		StartedAt: time.Now().UTC(),
	}
}
