package cmd

import (
	"log"
	"os"
)

// exit code of the process when an upload has been attempted and failed
const exitUploadFailed = 1

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit
)

func init() {
	log.SetFlags(0)
}

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%s: %v", msg, err)
	}
}
