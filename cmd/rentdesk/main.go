// rentdesk CLI - Command-line interface for a library-rental backend
package main

import (
	"os"

	"github.com/rentdesk/rentdesk/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
