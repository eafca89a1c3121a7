package logging_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"dailytask/internal/logging"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer

	assert.Equal(t, logrus.WarnLevel, logging.New(&buf, "", false).GetLevel())
	assert.Equal(t, logrus.InfoLevel, logging.New(&buf, "info", false).GetLevel())
	assert.Equal(t, logrus.WarnLevel, logging.New(&buf, "bogus", false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, logging.New(&buf, "error", true).GetLevel())
}

func TestNew_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, "", true)

	log.WithField("op", "fetch").Debug("request")

	assert.Contains(t, buf.String(), "op=fetch")
	assert.Contains(t, buf.String(), "request")
}

func TestDiscard(t *testing.T) {
	log := logging.Discard()
	log.Error("dropped")
}
