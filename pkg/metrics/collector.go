// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-sskr.
//
// go-sskr is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package metrics

import (
	"runtime"
	"time"
)

// Tracker times one operation.
type Tracker struct {
	operation string
	start     time.Time
}

// Track starts timing operation.
//
// Example:
//
//	tracker := metrics.Track(metrics.OpGenerate)
//	shares, err := sskr.Generate(spec, secret)
//	tracker.Done(err, sskr.KindOf(err).String())
func Track(operation string) *Tracker {
	return &Tracker{operation: operation, start: time.Now()}
}

// Done records the operation outcome. When err is not nil it is also
// counted under errorType.
func (t *Tracker) Done(err error, errorType string) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
		RecordError(t.operation, errorType)
	}
	RecordOperation(t.operation, status, time.Since(t.start).Seconds())
}

// CollectOnce updates the process resource gauges.
func CollectOnce() {
	if !IsEnabled() {
		return
	}

	Goroutines.Set(float64(runtime.NumGoroutine()))

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	MemoryAllocBytes.Set(float64(memStats.Alloc))
}
