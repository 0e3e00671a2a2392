// Package debug provides debug logging utilities.
package debug

import (
	"fmt"
	"io"
	"os"
	"time"
)

var (
	enabled           = os.Getenv("CMDSEQ_DEBUG") == "1"
	output  io.Writer = os.Stderr
)

// Logf writes a debug message to stderr if CMDSEQ_DEBUG=1
func Logf(format string, args ...any) {
	if !enabled {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(output, "[DEBUG %s] %s\n", timestamp, msg)
}
