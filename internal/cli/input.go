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


package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-sskr/internal/encoding"
	"github.com/jeremyhahn/go-sskr/pkg/sskr"
)

// inputAuto selects encoding detection for decoded input
const inputAuto = "auto"

// readInput reads a file, or stdin when path is empty or "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	// #nosec G304 - Input path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// splitLines returns the non-empty lines of data, skipping # comments
func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseInputEncoding accepts "auto" in addition to the encoding names
func parseInputEncoding(s string) (encoding.Format, error) {
	if s == "" || strings.EqualFold(s, inputAuto) {
		return encoding.FormatAuto, nil
	}
	return encoding.ParseFormat(s)
}

// errorType labels err for the errors_total metric
func errorType(err error) string {
	return sskr.KindOf(err).String()
}
