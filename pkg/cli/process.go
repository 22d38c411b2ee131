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

package cli

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
)

// Process is the entry point for CLI commands. User provided arguments are captured and
// matched against the defined commands, and the appropriate one (if any) is executed. There
// is no root level command and there are no root level flags; invoking <program> without
// arguments prints the full usage instead.
//
// All CLI errors are printed to os.Stderr and followed by os.Exit(2). Command execution
// errors are propagated to the caller. All remaining output is directed at os.Stdout.
//
// The abstract heads the generated help messages:
//
//      $ <program> -h
//      <abstract>
//
//      Usage of <program>:
//          ...
//
func Process(abstract string, commands Commands) error {
	// The program name prints as invoked, relative path and all; accounting for that would
	// mean asking the caller to pass the program name in.
	program, args := os.Args[0], os.Args[1:]

	// FlagSet outputs are discarded for composability with the rest of this package.
	for _, cmd := range commands {
		cmd.FlagSet.SetOutput(ioutil.Discard)
	}

	if len(args) == 0 {
		printFullUsage(program, abstract, commands)
		return nil
	}

	command := args[0]
	// '<program> help' ships out of the box and prints the full usage, as does the
	// '<program> -h' special allowance.
	if (command == "help" || command == "-h") && len(args) == 1 {
		printFullUsage(program, abstract, commands)
		return nil
	}

	if command == "help" && len(args) > 2 {
		fmt.Fprintln(os.Stderr, fmt.Sprintf("Usage: %s help [command]", program))
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Too many arguments given.")
		os.Exit(2) // Failed at '<program> help'.
	}

	// '<program> help' also works with every other command and help topic.
	if command == "help" && len(args) == 2 {
		cmd := args[1]
		if err := printCommandUsage(program, cmd, commands); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprintf("Unknown help topic '%s'", cmd))
			fmt.Fprintln(os.Stderr)
			fmt.Fprintln(os.Stderr, fmt.Sprintf("Run '%s help' for available topics.", program))
			os.Exit(2) // Failed at '<program> help cmd'.
		}
		return nil
	}

	for _, cmd := range commands {
		if cmd.Name() != command {
			continue
		}
		if !cmd.Runnable() {
			// Help topics share the command namespace but cannot be executed.
			continue
		}

		// Parsing failures come back wrapped through CmdParseError and are handled here;
		// everything else is the command's own failure and propagates to the caller.
		err := cmd.Run(cmd, args[1:])
		if _, ok := err.(parseError); !ok {
			return err
		}

		// A flag.Parse error of "help requested" is a valid state ('<program> cmd -h').
		// This is detected after cmd.Run since the flags are defined there.
		if strings.Contains(err.Error(), "help requested") {
			printCommandHelp(program, cmd)
			return nil
		}

		printCommandParsingError(program, cmd, err)
		os.Exit(2)
	}

	fmt.Fprintln(os.Stderr, fmt.Sprintf("Unknown command '%s'", command))
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, fmt.Sprintf("Run '%s help' for available commands.\n", program))
	os.Exit(2)
	return nil
}
