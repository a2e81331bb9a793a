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

type generateOptions struct {
	groupThreshold int
	groups         []string
	secret         string
	secretFile     string
	secretEncoding string
}

func newGenerateCommand(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Split a secret into SSKR shares",
		Long: `Split a secret into shares organized in groups.

Each --group takes a member quorum such as 2-of-3. The secret is read from
--secret, --secret-file or stdin, encoded as --secret-encoding.`,
		Example: `  sskr generate --group-threshold 2 --group 2-of-3 --group 3-of-5 \
    --secret 00112233445566778899aabbccddeeff`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			tracker := metrics.Track(metrics.OpGenerate)
			defer func() { tracker.Done(err, errorType(err)) }()
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.groupThreshold, "group-threshold", "t", 1,
		"number of groups needed to recover the secret")
	cmd.Flags().StringArrayVarP(&opts.groups, "group", "g", nil,
		"member quorum of one group, e.g. 2-of-3 (repeatable)")
	cmd.Flags().StringVar(&opts.secret, "secret", "",
		"secret to split")
	cmd.Flags().StringVar(&opts.secretFile, "secret-file", "",
		"file holding the secret (- for stdin)")
	cmd.Flags().StringVar(&opts.secretEncoding, "secret-encoding", string(encoding.FormatHex),
		"secret encoding (hex, base64)")
	_ = cmd.MarkFlagRequired("group")
	cmd.MarkFlagsMutuallyExclusive("secret", "secret-file")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	groups := make([]sskr.GroupSpec, 0, len(opts.groups))
	for _, g := range opts.groups {
		group, err := sskr.ParseGroupSpec(g)
		if err != nil {
			return err
		}
		groups = append(groups, group)
	}

	spec, err := sskr.NewSpec(opts.groupThreshold, groups)
	if err != nil {
		return err
	}
	a.printVerbose("spec: %s", spec)

	secret, err := a.readSecret(cmd, opts)
	if err != nil {
		return err
	}

	shares, err := sskr.GenerateShares(spec, secret, a.rng)
	if err != nil {
		return err
	}

	result := &GenerateResult{
		Spec:       spec.String(),
		Identifier: fmt.Sprintf("%04x", shares[0][0].Identifier()),
		Encoding:   string(a.encoding),
		Groups:     make([]GroupResult, len(shares)),
	}
	for i, group := range shares {
		gr := GroupResult{
			Index:     i,
			Threshold: spec.Groups()[i].MemberThreshold(),
			Count:     len(group),
			Shares:    make([]string, len(group)),
		}
		for j, share := range group {
			data, err := share.MarshalBinary()
			if err != nil {
				return err
			}
			if gr.Shares[j], err = encoding.EncodeShare(a.encoding, data); err != nil {
				return err
			}
		}
		result.Groups[i] = gr
	}

	metrics.RecordShares(metrics.OpGenerate, spec.ShareCount())
	metrics.RecordSecretSize(metrics.OpGenerate, secret.Len())
	a.logger.Info("generated shares",
		"spec", result.Spec,
		"identifier", result.Identifier,
		"shares", spec.ShareCount(),
		"secret_bytes", secret.Len())

	return a.printer(cmd.OutOrStdout()).PrintGenerate(result)
}

func (a *app) readSecret(cmd *cobra.Command, opts *generateOptions) (sskr.Secret, error) {
	format, err := encoding.ParseFormat(opts.secretEncoding)
	if err != nil {
		return sskr.Secret{}, err
	}

	text := opts.secret
	if text == "" {
		data, err := readInput(cmd, opts.secretFile)
		if err != nil {
			return sskr.Secret{}, err
		}
		text = string(data)
	}

	data, err := encoding.DecodeSecret(format, text)
	if err != nil {
		return sskr.Secret{}, fmt.Errorf("failed to decode secret: %w", err)
	}
	return sskr.NewSecret(data)
}
