// SPDX-License-Identifier: MPL-2.0

// toolscout is a bootstrap launcher for the coding-tools discovery
// bundle: it stages the bundle on the local machine, runs it under a
// Python 3 runtime, and can register itself as a recurring launchd job.
package main

import cmd "toolscout-cli/cmd/toolscout"

func main() {
	cmd.Execute()
}
