// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kraklabs/modsplit/internal/errors"
)

// cliMetrics holds Prometheus metrics for one invocation. They live on a
// private registry and are written out in text format for node_exporter's
// textfile collector, since the process exits long before any scrape.
type cliMetrics struct {
	registry *prometheus.Registry

	splits     prometheus.Counter
	batchLines prometheus.Counter
	failures   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newCLIMetrics() *cliMetrics {
	m := &cliMetrics{
		registry:   prometheus.NewRegistry(),
		splits:     prometheus.NewCounter(prometheus.CounterOpts{Name: "modsplit_splits_total", Help: "Remainders split successfully"}),
		batchLines: prometheus.NewCounter(prometheus.CounterOpts{Name: "modsplit_batch_lines_total", Help: "Batch input lines read, including blank and comment lines"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "modsplit_errors_total",
			Help: "Failed invocations by error kind",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "modsplit_run_duration_seconds",
			Help:    "Wall time of one invocation by mode",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"mode"}),
	}
	m.registry.MustRegister(m.splits, m.batchLines, m.failures, m.duration)
	return m
}

// errorKind maps an exit code to the "kind" label of modsplit_errors_total.
func errorKind(code int) string {
	switch code {
	case errors.ExitUsage:
		return "usage"
	case errors.ExitConfig:
		return "config"
	case errors.ExitInput:
		return "input"
	case errors.ExitDomain:
		return "domain"
	default:
		return "internal"
	}
}

// finish records the outcome of a run.
func (m *cliMetrics) finish(mode string, code int, elapsed time.Duration) {
	m.duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	if code != errors.ExitSuccess {
		m.failures.WithLabelValues(errorKind(code)).Inc()
	}
}

// writeFile writes all metrics to path atomically.
func (m *cliMetrics) writeFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
