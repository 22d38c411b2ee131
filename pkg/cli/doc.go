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

// Package cli allows the construction of structured command-line interfaces with
// sub-commands and help topics, in the manner of git where the top-level program name is
// followed by a qualifier selecting the sub-command to execute
// (git {reflog,commit,cherry-pick}).
//
// Package cli explicitly avoids init time global hooks and has a minimal binary size
// footprint.
//
// Example (from kawafs/kawa):
//
//      // We aggregate all the top-level commands, accessible via 'kawa <command> ...'.
//      var commands cli.Commands
//
//      // Top level commands for the {hello,vault,store,bridge} servers.
//      commands = append(commands, helloserver.HelloServerCmd)
//      commands = append(commands, vaultserver.VaultServerCmd)
//      commands = append(commands, storeserver.StoreServerCmd)
//      commands = append(commands, bridgeserver.BridgeServerCmd)
//
//      // Documentation pseudo-commands for kawa's architecture and kernel wire protocol.
//      commands = append(commands, doc.ArchitectureCmd)
//      commands = append(commands, doc.WireProtocolCmd)
//
//      abstract := "Kawa is a userspace file system toolkit, written in Go."
//      if err := cli.Process(abstract, commands); err != nil {
//      	os.Exit(1)
//      }
//
// This generates the following top-level behaviour:
//
//      $ kawa {,-h,help}
//      Kawa is a userspace file system toolkit, written in Go.
//
//      Usage:
//
//          kawa command [arguments]
//
//      The commands are:
//
//              hello-server           serve a single read-only hello file
//              vault-server           serve an encrypted local file system
//              store-server           run the kawa block store server
//              bridge-server          mount a kawa store as a file system
//
//      Use 'kawa help [command]' for more information about a command.
//
//      Additional help topics:
//
//              architecture           kawa system architecture overview
//              wire-protocol          kernel wire protocol overview
//
//      Use "kawa help [topic]" for more information about that topic.
//
// Using help for a listed command displays the following:
//
//      $ kawa help store-server
//      Usage: kawa store-server [-f] [-a arg]
//
//      Store server detailed overview.
//
// Doing the same for an additional help topic, we get the following:
//
//      $ kawa help architecture
//      Topic: kawa system architecture overview
//
//      Detailed description of the kawa system architecture.
//
// Individual commands also have their own '-h' switches for additional command details.
//
//      $ kawa store-server -h
//      Usage:
//
//          kawa store-server [-f] [-a arg]
//
//          -a string
//              Argument parameter usage
//          -f    Flag usage
//
package cli
