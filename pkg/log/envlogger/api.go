/*
Package envlogger creates loggers for processes which are configured through
environment variables rather than command-line flags, such as AWS Lambda
functions.
*/
package envlogger

import (
	"io"
	"os"

	"github.com/Cloud-Foundations/Dominator/lib/log/debuglogger"
)

type Options struct {
	Datestamps bool
	DebugLevel int // Supported range: -1 to 32767.
	Subseconds bool
	Writer     io.Writer
}

// GetStandardOptions will return the standard options.
// The following environment variables are used:
//
//	PTR_DEBUG_LEVEL: debug log level (default: -1)
//	PTR_LOG_DATESTAMPS: if true, prefix logs with datestamps
//
// The standard error is used for the output.
func GetStandardOptions() Options {
	return getStandardOptions(os.Getenv)
}

// New will create a debuglogger.Logger with the specified options.
func New(options Options) *debuglogger.Logger {
	return newLogger(options)
}
