// Copyright © 2026 DigitPaint

package main

import (
	"github.com/DigitPaint/sneakpeek-cli/cmd/sneakpeek/cmd"
)

func main() {
	cmd.Execute()
}
