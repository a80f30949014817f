package recordstore

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	writesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recordstore_writes_total", Help: "Successful collection writes"},
		[]string{"collection"},
	)
	conflictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recordstore_conflicts_total", Help: "Compare-and-set conflicts seen by collection writers"},
		[]string{"collection"},
	)
)

func init() { prometheus.MustRegister(writesTotal, conflictsTotal) }

// metricLabel drops the per-instance suffix of slot keys such as
// "cft_jobs_current_user:<session id>".
func metricLabel(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}
