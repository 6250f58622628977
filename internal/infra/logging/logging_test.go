package logging_test

import (
	"bytes"
	"testing"

	"handicrafts/internal/infra/logging"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, logging.ParseLevel("debug"))
	assert.Equal(t, log.WARN, logging.ParseLevel(" WARN "))
	assert.Equal(t, log.ERROR, logging.ParseLevel("error"))
	assert.Equal(t, log.OFF, logging.ParseLevel("off"))
	assert.Equal(t, log.INFO, logging.ParseLevel("verbose"))
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New("warn")
	l.SetOutput(&buf)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}
