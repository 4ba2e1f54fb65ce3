package config_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-labplanner/internal/blob"
	"github.com/askiada/go-labplanner/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.UploadConcurrency)
	assert.Equal(t, blob.Config{
		Driver: blob.DriverFilesystem,
		Root:   "./labdata",
		S3:     blob.S3Config{Region: "us-east-1"},
	}, cfg.BlobConfig())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LABPLANNER_LOG_LEVEL", "debug")
	t.Setenv("LABPLANNER_UPLOAD_CONCURRENCY", "8")
	t.Setenv("LABPLANNER_BLOB_DRIVER", "s3")
	t.Setenv("LABPLANNER_BLOB_S3_BUCKET", "lab")
	t.Setenv("LABPLANNER_BLOB_S3_ENDPOINT", "http://minio:9000")
	t.Setenv("LABPLANNER_BLOB_S3_PATH_STYLE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.UploadConcurrency)

	bc := cfg.BlobConfig()
	assert.Equal(t, blob.DriverS3, bc.Driver)
	assert.Equal(t, "lab", bc.S3.Bucket)
	assert.Equal(t, "http://minio:9000", bc.S3.Endpoint)
	assert.True(t, bc.S3.PathStyle)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		key, value string
	}{
		"not a number": {key: "LABPLANNER_UPLOAD_CONCURRENCY", value: "many"},
		"zero uploads": {key: "LABPLANNER_UPLOAD_CONCURRENCY", value: "0"},
		"not a bool":   {key: "LABPLANNER_BLOB_S3_PATH_STYLE", value: "maybe"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := config.NewLogger("warn", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	config.LogError(logger, "saver", "Save", map[string]int{"sheets": 3}, errors.New("boom"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "saver", entry["component"])
	assert.Equal(t, "Save", entry["operation"])
	assert.Equal(t, map[string]interface{}{"sheets": float64(3)}, entry["data"])

	_, err = config.NewLogger("loud", nil)
	require.Error(t, err)
}
