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
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-sskr/pkg/sskr"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// GenerateResult is the output of the generate command
type GenerateResult struct {
	Spec       string        `json:"spec" yaml:"spec"`
	Identifier string        `json:"identifier" yaml:"identifier"`
	Encoding   string        `json:"encoding" yaml:"encoding"`
	Groups     []GroupResult `json:"groups" yaml:"groups"`
}

// GroupResult holds the encoded shares of one group
type GroupResult struct {
	Index     int      `json:"index" yaml:"index"`
	Threshold int      `json:"threshold" yaml:"threshold"`
	Count     int      `json:"count" yaml:"count"`
	Shares    []string `json:"shares" yaml:"shares"`
}

// SecretResult is the output of the combine command
type SecretResult struct {
	Secret   string `json:"secret" yaml:"secret"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Length   int    `json:"length" yaml:"length"`
}

// ShareInfo describes the metadata of one share
type ShareInfo struct {
	Identifier      string `json:"identifier" yaml:"identifier"`
	GroupIndex      int    `json:"group_index" yaml:"group_index"`
	GroupThreshold  int    `json:"group_threshold" yaml:"group_threshold"`
	GroupCount      int    `json:"group_count" yaml:"group_count"`
	MemberIndex     int    `json:"member_index" yaml:"member_index"`
	MemberThreshold int    `json:"member_threshold" yaml:"member_threshold"`
	ValueLength     int    `json:"value_length" yaml:"value_length"`
	Encoding        string `json:"encoding" yaml:"encoding"`
	Diagnostic      string `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// VersionInfo describes the build
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintGenerate prints generated shares. Text output is one share per line
// with commented group headers, which the combine command reads back as is.
func (p *Printer) PrintGenerate(result *GenerateResult) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.printStructured(result)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "# spec %s, identifier %s, encoding %s\n",
			result.Spec, result.Identifier, result.Encoding)
		for _, g := range result.Groups {
			fmt.Fprintf(p.writer, "# group %d: %d-of-%d\n", g.Index, g.Threshold, g.Count)
			for _, s := range g.Shares {
				fmt.Fprintln(p.writer, s)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSecret prints a recovered secret
func (p *Printer) PrintSecret(result *SecretResult) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.printStructured(result)
	case OutputFormatText:
		fmt.Fprintln(p.writer, result.Secret)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintShareInfo prints decoded share metadata
func (p *Printer) PrintShareInfo(infos []ShareInfo) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.printStructured(map[string]interface{}{
			"shares": infos,
		})
	case OutputFormatText:
		for i, info := range infos {
			if i > 0 {
				fmt.Fprintln(p.writer)
			}
			fmt.Fprintf(p.writer, "Identifier:       %s\n", info.Identifier)
			fmt.Fprintf(p.writer, "Group:            %d of %d (threshold %d)\n",
				info.GroupIndex+1, info.GroupCount, info.GroupThreshold)
			fmt.Fprintf(p.writer, "Member:           %d (threshold %d)\n",
				info.MemberIndex+1, info.MemberThreshold)
			fmt.Fprintf(p.writer, "Value length:     %d bytes\n", info.ValueLength)
			fmt.Fprintf(p.writer, "Encoding:         %s\n", info.Encoding)
			if info.Diagnostic != "" {
				fmt.Fprintf(p.writer, "CBOR:             %s\n", info.Diagnostic)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintVersion prints build information
func (p *Printer) PrintVersion(info *VersionInfo) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.printStructured(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "sskr version %s\n", info.Version)
		fmt.Fprintf(p.writer, "Git commit: %s\n", info.Commit)
		fmt.Fprintf(p.writer, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(p.writer, "Go version: %s\n", info.GoVersion)
		fmt.Fprintf(p.writer, "OS/Arch: %s/%s\n", info.OS, info.Arch)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON, OutputFormatYAML:
		return p.printStructured(map[string]interface{}{
			"status": "error",
			"kind":   sskr.KindOf(err).String(),
			"error":  err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printStructured(data interface{}) error {
	if p.format == OutputFormatYAML {
		return p.printYAML(data)
	}
	return p.printJSON(data)
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (p *Printer) printYAML(data interface{}) error {
	encoder := yaml.NewEncoder(p.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}
