package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, logLevel(""))
	assert.Equal(t, zerolog.DebugLevel, logLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logLevel("warn"))
	assert.Equal(t, zerolog.TraceLevel, logLevel("trace"))
	assert.Equal(t, zerolog.Disabled, logLevel("disabled"))

	// Garbage falls back rather than silencing the process
	assert.Equal(t, zerolog.InfoLevel, logLevel("loud"))
}
