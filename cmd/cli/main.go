// alumnex - Alumni Experience Extractor
//
// alumnex reads alumni spreadsheets and extracts one record per work
// experience, with the duration computed from the date range.
package main

import (
	"os"

	"github.com/jecc/alumnex/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
