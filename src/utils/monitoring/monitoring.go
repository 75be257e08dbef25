package monitoring

import (
	"github.com/opensquare-network/referenda-syncer/src/utils/monitoring/report"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Interface implemented by component-specific monitors
type Monitor interface {
	GetReport() *report.Report
	GetPrometheusCollector() prometheus.Collector
	IsOK() bool

	OnGetState(c *gin.Context)
	OnGetHealth(c *gin.Context)
}
