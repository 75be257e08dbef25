package monitor_syncer

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	UpForSeconds *prometheus.Desc

	CyclesFinished     *prometheus.Desc
	ReferendaFetched   *prometheus.Desc
	ReferendaNew       *prometheus.Desc
	ProposalsPublished *prometheus.Desc
	ReferendaSkipped   *prometheus.Desc
	ReferendaFailed    *prometheus.Desc
	LastSnapshotHeight *prometheus.Desc
	LastPublishedIndex *prometheus.Desc

	FetchErrors          *prometheus.Desc
	MalformedFetchErrors *prometheus.Desc
	SnapshotErrors       *prometheus.Desc
	SigningErrors        *prometheus.Desc
	PublishErrors        *prometheus.Desc
	RejectedProposals    *prometheus.Desc
	DbErrors             *prometheus.Desc
	CommitErrors         *prometheus.Desc

	MessagesPublished *prometheus.Desc
	RedisErrors       *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "referenda-syncer",
	}

	return &Collector{
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, labels),

		CyclesFinished:     prometheus.NewDesc("cycles_finished", "", nil, labels),
		ReferendaFetched:   prometheus.NewDesc("referenda_fetched", "", nil, labels),
		ReferendaNew:       prometheus.NewDesc("referenda_new", "", nil, labels),
		ProposalsPublished: prometheus.NewDesc("proposals_published", "", nil, labels),
		ReferendaSkipped:   prometheus.NewDesc("referenda_skipped", "", nil, labels),
		ReferendaFailed:    prometheus.NewDesc("referenda_failed", "", nil, labels),
		LastSnapshotHeight: prometheus.NewDesc("last_snapshot_height", "", nil, labels),
		LastPublishedIndex: prometheus.NewDesc("last_published_index", "", nil, labels),

		FetchErrors:          prometheus.NewDesc("error_fetch", "", nil, labels),
		MalformedFetchErrors: prometheus.NewDesc("error_fetch_malformed", "", nil, labels),
		SnapshotErrors:       prometheus.NewDesc("error_snapshot", "", nil, labels),
		SigningErrors:        prometheus.NewDesc("error_signing", "", nil, labels),
		PublishErrors:        prometheus.NewDesc("error_publish", "", nil, labels),
		RejectedProposals:    prometheus.NewDesc("rejected_proposals", "", nil, labels),
		DbErrors:             prometheus.NewDesc("error_db", "", nil, labels),
		CommitErrors:         prometheus.NewDesc("error_commit", "", nil, labels),

		MessagesPublished: prometheus.NewDesc("redis_messages_published", "", nil, labels),
		RedisErrors:       prometheus.NewDesc("error_redis_publish", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.UpForSeconds
	ch <- self.CyclesFinished
	ch <- self.ReferendaFetched
	ch <- self.ReferendaNew
	ch <- self.ProposalsPublished
	ch <- self.ReferendaSkipped
	ch <- self.ReferendaFailed
	ch <- self.LastSnapshotHeight
	ch <- self.LastPublishedIndex
	ch <- self.FetchErrors
	ch <- self.MalformedFetchErrors
	ch <- self.SnapshotErrors
	ch <- self.SigningErrors
	ch <- self.PublishErrors
	ch <- self.RejectedProposals
	ch <- self.DbErrors
	ch <- self.CommitErrors
	ch <- self.MessagesPublished
	ch <- self.RedisErrors
}

// Collect implements required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	state := &self.monitor.Report.Syncer.State
	errors := &self.monitor.Report.Syncer.Errors

	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))

	ch <- prometheus.MustNewConstMetric(self.CyclesFinished, prometheus.CounterValue, float64(state.CyclesFinished.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReferendaFetched, prometheus.CounterValue, float64(state.ReferendaFetched.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReferendaNew, prometheus.CounterValue, float64(state.ReferendaNew.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProposalsPublished, prometheus.CounterValue, float64(state.ProposalsPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReferendaSkipped, prometheus.CounterValue, float64(state.ReferendaSkipped.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReferendaFailed, prometheus.CounterValue, float64(state.ReferendaFailed.Load()))
	ch <- prometheus.MustNewConstMetric(self.LastSnapshotHeight, prometheus.GaugeValue, float64(state.LastSnapshotHeight.Load()))
	ch <- prometheus.MustNewConstMetric(self.LastPublishedIndex, prometheus.GaugeValue, float64(state.LastPublishedIndex.Load()))

	ch <- prometheus.MustNewConstMetric(self.FetchErrors, prometheus.CounterValue, float64(errors.FetchErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.MalformedFetchErrors, prometheus.CounterValue, float64(errors.MalformedFetchErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.SnapshotErrors, prometheus.CounterValue, float64(errors.SnapshotErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.SigningErrors, prometheus.CounterValue, float64(errors.SigningErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishErrors, prometheus.CounterValue, float64(errors.PublishErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.RejectedProposals, prometheus.CounterValue, float64(errors.RejectedProposals.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbErrors, prometheus.CounterValue, float64(errors.DbErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.CommitErrors, prometheus.CounterValue, float64(errors.CommitErrors.Load()))

	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.RedisErrors, prometheus.CounterValue, float64(self.monitor.Report.RedisPublisher.Errors.Publish.Load()))
}
