package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-risk-gateway/internal/domain"
)

func TestNew_Defaults(t *testing.T) {
	logger, err := New(domain.LoggingConfig{})
	require.NoError(t, err)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stdout, logger.Out)
}

func TestNew_TextToStderr(t *testing.T) {
	logger, err := New(domain.LoggingConfig{Level: "debug", Format: "TEXT", Output: "stderr"})
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stderr, logger.Out)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gateway.log")

	logger, err := New(domain.LoggingConfig{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	defer logger.Out.(*os.File).Close()

	logger.WithField("engine", "QRisk3").Info("Engine completed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "QRisk3", entry["engine"])
	assert.Equal(t, "Engine completed", entry["msg"])
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(domain.LoggingConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = New(domain.LoggingConfig{Format: "xml"})
	assert.Error(t, err)
}
