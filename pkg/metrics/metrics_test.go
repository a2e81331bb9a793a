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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func resetAll() {
	OperationsTotal.Reset()
	OperationDuration.Reset()
	ErrorsTotal.Reset()
	SharesTotal.Reset()
	SecretSizeBytes.Reset()
}

func TestMetricsEnabled(t *testing.T) {
	// Metrics should be enabled by default
	if !IsEnabled() {
		t.Error("Expected metrics to be enabled by default")
	}

	Disable()
	if IsEnabled() {
		t.Error("Expected metrics to be disabled after Disable()")
	}

	Enable()
	if !IsEnabled() {
		t.Error("Expected metrics to be enabled after Enable()")
	}
}

func TestRecordOperation(t *testing.T) {
	Enable()
	resetAll()

	RecordOperation(OpGenerate, StatusSuccess, 0.0002)
	RecordOperation(OpGenerate, StatusSuccess, 0.0003)
	RecordOperation(OpCombine, StatusError, 0.0001)

	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpGenerate, StatusSuccess)); got != 2 {
		t.Errorf("Expected 2 generate operations, got %v", got)
	}
	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpCombine, StatusError)); got != 1 {
		t.Errorf("Expected 1 failed combine, got %v", got)
	}
	if count := testutil.CollectAndCount(OperationDuration); count != 2 {
		t.Errorf("Expected 2 duration series, got %d", count)
	}
}

func TestRecordError(t *testing.T) {
	Enable()
	resetAll()

	RecordError(OpCombine, "quorum")
	RecordError(OpCombine, "quorum")
	RecordError(OpCombine, "wire")

	if got := testutil.ToFloat64(ErrorsTotal.WithLabelValues(OpCombine, "quorum")); got != 2 {
		t.Errorf("Expected 2 quorum errors, got %v", got)
	}
	if count := testutil.CollectAndCount(ErrorsTotal); count != 2 {
		t.Errorf("Expected 2 error series, got %d", count)
	}
}

func TestRecordSharesAndSecretSize(t *testing.T) {
	Enable()
	resetAll()

	RecordShares(OpGenerate, 8)
	RecordShares(OpCombine, 5)
	RecordSecretSize(OpGenerate, 32)

	if got := testutil.ToFloat64(SharesTotal.WithLabelValues(OpGenerate)); got != 8 {
		t.Errorf("Expected 8 generated shares, got %v", got)
	}
	if got := testutil.ToFloat64(SharesTotal.WithLabelValues(OpCombine)); got != 5 {
		t.Errorf("Expected 5 combined shares, got %v", got)
	}
	if count := testutil.CollectAndCount(SecretSizeBytes); count != 1 {
		t.Errorf("Expected 1 secret size series, got %d", count)
	}
}

func TestDisabledMetricsAreNotRecorded(t *testing.T) {
	resetAll()
	Disable()
	defer Enable()

	RecordOperation(OpGenerate, StatusSuccess, 0.1)
	RecordError(OpGenerate, "config")
	RecordShares(OpGenerate, 3)
	RecordSecretSize(OpGenerate, 16)

	for name, count := range map[string]int{
		"operations": testutil.CollectAndCount(OperationsTotal),
		"errors":     testutil.CollectAndCount(ErrorsTotal),
		"shares":     testutil.CollectAndCount(SharesTotal),
		"sizes":      testutil.CollectAndCount(SecretSizeBytes),
	} {
		if count != 0 {
			t.Errorf("Expected no %s series while disabled, got %d", name, count)
		}
	}
}

func TestTracker(t *testing.T) {
	Enable()
	resetAll()

	Track(OpInspect).Done(nil, "")
	Track(OpInspect).Done(errors.New("bad share"), "wire")

	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpInspect, StatusSuccess)); got != 1 {
		t.Errorf("Expected 1 successful inspect, got %v", got)
	}
	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues(OpInspect, StatusError)); got != 1 {
		t.Errorf("Expected 1 failed inspect, got %v", got)
	}
	if got := testutil.ToFloat64(ErrorsTotal.WithLabelValues(OpInspect, "wire")); got != 1 {
		t.Errorf("Expected 1 wire error, got %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	Enable()
	resetAll()

	RecordOperation(OpCombine, StatusSuccess, 0.001)
	RecordShares(OpCombine, 3)

	path := filepath.Join(t.TempDir(), "sskr.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		`sskr_operations_total{operation="combine",status="success"} 1`,
		`sskr_shares_total{operation="combine"} 3`,
		"sskr_goroutines",
		"sskr_memory_alloc_bytes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected textfile to contain %q", want)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sskr.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("Expected error writing to a missing directory")
	}
}
