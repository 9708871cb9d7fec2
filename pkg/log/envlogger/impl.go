package envlogger

import (
	"log"
	"os"
	"strconv"

	"github.com/Cloud-Foundations/Dominator/lib/log/debuglogger"
	"github.com/Cloud-Foundations/ptrsync/pkg/constants"
)

func getStandardOptions(getenv func(key string) string) Options {
	options := Options{DebugLevel: -1, Writer: os.Stderr}
	if value := getenv(constants.DebugLevelVariable); value != "" {
		if level, err := strconv.Atoi(value); err == nil {
			options.DebugLevel = level
		}
	}
	if value := getenv(constants.LogDatestampsVariable); value != "" {
		options.Datestamps, _ = strconv.ParseBool(value)
	}
	return options
}

func newLogger(options Options) *debuglogger.Logger {
	if options.Writer == nil {
		options.Writer = os.Stderr
	}
	flags := 0
	if options.Datestamps {
		flags |= log.LstdFlags
		if options.Subseconds {
			flags |= log.Lmicroseconds
		}
	}
	if options.DebugLevel < -1 {
		options.DebugLevel = -1
	} else if options.DebugLevel > 32767 {
		options.DebugLevel = 32767
	}
	logger := debuglogger.New(log.New(options.Writer, "", flags))
	logger.SetLevel(int16(options.DebugLevel))
	return logger
}
