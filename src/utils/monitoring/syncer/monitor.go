package monitor_syncer

import (
	"math"
	"net/http"
	"time"

	"github.com/opensquare-network/referenda-syncer/src/utils/monitoring/report"
	"github.com/opensquare-network/referenda-syncer/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int
	collector   *Collector

	// Expected gap between cycles, used for the health check
	cycleInterval time.Duration

	// Publication speed
	PublishedCounts *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:            &report.RunReport{},
		Syncer:         &report.SyncerReport{},
		RedisPublisher: &report.RedisPublisherReport{},
	}

	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorPublished)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize
	self.PublishedCounts = deque.New[uint64](self.historySize)
	return self
}

func (self *Monitor) WithCycleInterval(interval time.Duration) *Monitor {
	self.cycleInterval = interval
	return self
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure publication speed
func (self *Monitor) monitorPublished() (err error) {
	loaded := self.Report.Syncer.State.ProposalsPublished.Load()
	if loaded == 0 {
		// Neglect the first 0
		return
	}

	self.PublishedCounts.PushBack(loaded)
	if self.PublishedCounts.Len() > self.historySize {
		self.PublishedCounts.PopFront()
	}
	value := float64(self.PublishedCounts.Back()-self.PublishedCounts.Front()) / float64(self.PublishedCounts.Len())
	self.Report.Syncer.State.AveragePublishedPerCycle.Store(round(value))
	return
}

func (self *Monitor) IsOK() bool {
	now := time.Now().Unix()
	if now-self.Report.Run.State.StartTimestamp.Load() < 300 {
		return true
	}

	if self.cycleInterval <= 0 {
		return true
	}

	// Unhealthy when cycles stopped coming in
	lastCycle := self.Report.Syncer.State.LastCycleTimestamp.Load()
	return now-lastCycle < 3*int64(self.cycleInterval.Seconds())
}

func (self *Monitor) OnGetState(c *gin.Context) {
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))
	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
