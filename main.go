// SPDX-License-Identifier: MPL-2.0

package main

import cmd "skillex-cli/cmd/skillex"

func main() {
	cmd.Execute()
}
