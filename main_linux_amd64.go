// Copyright 2026 The Kawa Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/kawafs/kawa/doc"
	"github.com/kawafs/kawa/pkg/cli"

	bridgeserver "github.com/kawafs/kawa/cmd/bridge-server"
	helloserver "github.com/kawafs/kawa/cmd/hello-server"
	storeserver "github.com/kawafs/kawa/cmd/store-server"
	vaultserver "github.com/kawafs/kawa/cmd/vault-server"
)

func main() {
	// We aggregate all the top-level commands (i.e. 'kawa <command> ...') as
	// needed.
	var commands cli.Commands

	// We include top level commands for
	// {hello,vault,store,bridge}-servers.
	commands = append(commands, helloserver.HelloServerCmd)
	commands = append(commands, vaultserver.VaultServerCmd)
	commands = append(commands, storeserver.StoreServerCmd)
	commands = append(commands, bridgeserver.BridgeServerCmd)

	// We also include documentation pseudo-commands for Kawa's architecture
	// and the kernel wire protocol.
	commands = append(commands, doc.ArchitectureCmd)
	commands = append(commands, doc.WireProtocolCmd)

	// We define the top level CLI abstract here.
	abstract := "Kawa is a userspace file system toolkit, written in Go."
	if err := cli.Process(abstract, commands); err != nil {
		os.Exit(1)
	}
}
