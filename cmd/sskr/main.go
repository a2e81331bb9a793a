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


// Command sskr splits secrets into SSKR shares and recombines them.
package main

import (
	"os"

	"github.com/jeremyhahn/go-sskr/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
