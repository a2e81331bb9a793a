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

func newInspectCommand(a *app) *cobra.Command {
	var inputEncoding string

	cmd := &cobra.Command{
		Use:   "inspect SHARE [SHARE ...]",
		Short: "Print the metadata of SSKR shares",
		Long: `Decode shares and print their identifier, group and member metadata.
Share values are never printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			tracker := metrics.Track(metrics.OpInspect)
			defer func() { tracker.Done(err, errorType(err)) }()
			return a.runInspect(cmd, inputEncoding, args)
		},
	}

	cmd.Flags().StringVar(&inputEncoding, "input-encoding", inputAuto,
		"share encoding (auto, hex, base64, cbor)")

	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, inputEncoding string, args []string) error {
	format, err := parseInputEncoding(inputEncoding)
	if err != nil {
		return err
	}

	infos := make([]ShareInfo, len(args))
	for i, arg := range args {
		f := format
		if f == encoding.FormatAuto {
			f = encoding.Detect(arg)
		}

		data, err := encoding.DecodeShare(f, arg)
		if err != nil {
			return fmt.Errorf("share %d: %w", i, err)
		}
		share, err := sskr.ParseShare(data)
		if err != nil {
			return fmt.Errorf("share %d: %w", i, err)
		}

		infos[i] = ShareInfo{
			Identifier:      fmt.Sprintf("%04x", share.Identifier()),
			GroupIndex:      share.GroupIndex(),
			GroupThreshold:  share.GroupThreshold(),
			GroupCount:      share.GroupCount(),
			MemberIndex:     share.MemberIndex(),
			MemberThreshold: share.MemberThreshold(),
			ValueLength:     share.Value().Len(),
			Encoding:        string(f),
		}
		if f == encoding.FormatCBOR {
			if infos[i].Diagnostic, err = encoding.Diagnose(arg); err != nil {
				return fmt.Errorf("share %d: %w", i, err)
			}
		}
	}

	metrics.RecordShares(metrics.OpInspect, len(infos))
	return a.printer(cmd.OutOrStdout()).PrintShareInfo(infos)
}
