// Command patientctl validates record files against the API's record schemas.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/patient-api/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := cli.NewRootCommand(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "patientctl:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
