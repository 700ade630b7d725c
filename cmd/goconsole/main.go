// Command goconsole runs the admin console HTTP shell and manages its theme
// preference from the terminal.
//
// Configuration comes from GOCONSOLE_* environment variables; see envConfig.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
