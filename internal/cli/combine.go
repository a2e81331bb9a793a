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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-sskr/internal/encoding"
	"github.com/jeremyhahn/go-sskr/pkg/metrics"
	"github.com/jeremyhahn/go-sskr/pkg/sskr"
)

type combineOptions struct {
	file           string
	inputEncoding  string
	secretEncoding string
}

func newCombineCommand(a *app) *cobra.Command {
	opts := &combineOptions{}

	cmd := &cobra.Command{
		Use:   "combine [SHARE ...]",
		Short: "Recover a secret from SSKR shares",
		Long: `Recover a secret from shares given as arguments, in --file, or on stdin
when neither is present. Blank lines and lines starting with # are ignored,
so the text output of generate can be passed back as is. Shares beyond the
quorum are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			tracker := metrics.Track(metrics.OpCombine)
			defer func() { tracker.Done(err, errorType(err)) }()
			return a.runCombine(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "",
		"file with one share per line (- for stdin)")
	cmd.Flags().StringVar(&opts.inputEncoding, "input-encoding", inputAuto,
		"share encoding (auto, hex, base64, cbor)")
	cmd.Flags().StringVar(&opts.secretEncoding, "secret-encoding", string(encoding.FormatHex),
		"encoding of the recovered secret (hex, base64)")

	return cmd
}

func (a *app) runCombine(cmd *cobra.Command, opts *combineOptions, args []string) error {
	inputFormat, err := parseInputEncoding(opts.inputEncoding)
	if err != nil {
		return err
	}
	secretFormat, err := encoding.ParseFormat(opts.secretEncoding)
	if err != nil {
		return err
	}

	lines := append([]string(nil), args...)
	if opts.file != "" || len(args) == 0 {
		data, err := readInput(cmd, opts.file)
		if err != nil {
			return err
		}
		lines = append(lines, splitLines(data)...)
	}
	a.printVerbose("read %d shares", len(lines))

	shares := make([][]byte, len(lines))
	for i, line := range lines {
		if shares[i], err = encoding.DecodeShare(inputFormat, line); err != nil {
			return fmt.Errorf("share %d: %w", i, err)
		}
	}

	secret, err := sskr.Combine(shares)
	if err != nil {
		return err
	}

	text, err := encoding.EncodeSecret(secretFormat, secret.Bytes())
	if err != nil {
		return err
	}

	metrics.RecordShares(metrics.OpCombine, len(shares))
	metrics.RecordSecretSize(metrics.OpCombine, secret.Len())
	a.logger.Info("recovered secret",
		"shares", len(shares),
		"secret_bytes", secret.Len())

	return a.printer(cmd.OutOrStdout()).PrintSecret(&SecretResult{
		Secret:   text,
		Encoding: string(secretFormat),
		Length:   secret.Len(),
	})
}
