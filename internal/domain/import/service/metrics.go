package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_import_rows_imported_total",
		Help: "Rows successfully normalized, categorized and persisted.",
	})
	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_import_rows_skipped_total",
		Help: "Rows dropped during normalization with a reported reason.",
	})
	filesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "statement_import_files_failed_total",
		Help: "Statement files rejected before persistence.",
	})
)
