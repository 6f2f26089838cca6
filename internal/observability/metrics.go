package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CacheLookups counts read-through cache lookups by key and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_cache_lookups_total",
		Help: "Total number of cache lookups by key and result",
	}, []string{"key", "result"})
)

const queryStartKey = "folio:query_start"

// InstrumentDB registers GORM callbacks that observe query latency into
// DatabaseQueryLatency.
func InstrumentDB(db *gorm.DB) error {
	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", startTimer); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", observe("create")); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", startTimer); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", observe("query")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", startTimer); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", observe("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", startTimer); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", observe("delete")); err != nil {
		return err
	}
	if err := cb.Raw().Before("gorm:raw").Register("metrics:before_raw", startTimer); err != nil {
		return err
	}
	return cb.Raw().After("gorm:raw").Register("metrics:after_raw", observe("raw"))
}

func startTimer(tx *gorm.DB) {
	tx.InstanceSet(queryStartKey, time.Now())
}

func observe(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		table := tx.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
