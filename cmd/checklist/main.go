package main

import (
	"os"

	"github.com/idilsaglam/checklist/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
