package log

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	Debug *log.Logger
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

func init() {
	Configure(os.Stdout, os.Stderr, false)
}

// Configure points Info and Warn at out and Error at errOut.
// Debug output is discarded unless verbose is set.
func Configure(out, errOut io.Writer, verbose bool) {
	debugOut := io.Discard
	if verbose {
		debugOut = out
	}

	Debug = log.New(debugOut,
		color.CyanString("[DEBUG] "),
		flags)
	Info = log.New(out,
		color.GreenString("[INFO] "),
		flags)
	Warn = log.New(out,
		color.YellowString("[WARN] "),
		flags)
	Error = log.New(errOut,
		color.RedString("[ERROR] "),
		flags)
}
