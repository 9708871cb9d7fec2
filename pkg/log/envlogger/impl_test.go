package envlogger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStandardOptions(t *testing.T) {
	options := getStandardOptions(func(string) string { return "" })
	assert.Equal(t, -1, options.DebugLevel)
	assert.False(t, options.Datestamps)
	options = getStandardOptions(func(key string) string {
		return map[string]string{
			"PTR_DEBUG_LEVEL":    "2",
			"PTR_LOG_DATESTAMPS": "true",
		}[key]
	})
	assert.Equal(t, 2, options.DebugLevel)
	assert.True(t, options.Datestamps)
}

func TestDebugLevel(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := New(Options{DebugLevel: 1, Writer: buffer})
	logger.Println("always")
	logger.Debugln(1, "level one")
	logger.Debugln(2, "level two")
	assert.Equal(t, "always\nlevel one\n", buffer.String())
}
