// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/lars-sh/jarrunner/cmd/jarrunner"

func main() {
	cmd.Execute()
}
