// Package config reads the labplanner settings from the environment and
// builds the process logger.
package config

import (
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/askiada/go-labplanner/internal/blob"
)

// Config holds the settings of a labplanner process.
type Config struct {
	LogLevel          string `envconfig:"LABPLANNER_LOG_LEVEL" default:"info"`
	UploadConcurrency int    `envconfig:"LABPLANNER_UPLOAD_CONCURRENCY" default:"4"`

	Blob struct {
		Driver string `envconfig:"LABPLANNER_BLOB_DRIVER" default:"fs"`
		Root   string `envconfig:"LABPLANNER_BLOB_FS_ROOT" default:"./labdata"`
	}

	S3 struct {
		Bucket          string `envconfig:"LABPLANNER_BLOB_S3_BUCKET"`
		Region          string `envconfig:"LABPLANNER_BLOB_S3_REGION" default:"us-east-1"`
		Endpoint        string `envconfig:"LABPLANNER_BLOB_S3_ENDPOINT"`
		PathStyle       bool   `envconfig:"LABPLANNER_BLOB_S3_PATH_STYLE"`
		AccessKeyID     string `envconfig:"LABPLANNER_BLOB_S3_ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"LABPLANNER_BLOB_S3_SECRET_ACCESS_KEY"`
		SessionToken    string `envconfig:"LABPLANNER_BLOB_S3_SESSION_TOKEN"`
	}
}

// Load reads the configuration from the LABPLANNER_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "unable to read configuration")
	}

	if cfg.UploadConcurrency < 1 {
		return nil, errors.Errorf("upload concurrency must be positive, got %d", cfg.UploadConcurrency)
	}

	return cfg, nil
}

// BlobConfig returns the blob store settings.
func (c *Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.Blob.Driver),
		Root:   c.Blob.Root,
		S3: blob.S3Config{
			Bucket:          c.S3.Bucket,
			Region:          c.S3.Region,
			Endpoint:        c.S3.Endpoint,
			AccessKeyID:     c.S3.AccessKeyID,
			SecretAccessKey: c.S3.SecretAccessKey,
			SessionToken:    c.S3.SessionToken,
			PathStyle:       c.S3.PathStyle,
		},
	}
}

// NewLogger returns a JSON logger writing to out at level.
func NewLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	if out == nil {
		out = os.Stderr
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(lvl)
	logger.SetOutput(out)

	return logger, nil
}

// LogError logs err with the component and operation it came from.
func LogError(logger *logrus.Logger, component, operation string, data interface{}, err error) {
	fields := logrus.Fields{
		"component": component,
		"operation": operation,
	}
	if data != nil {
		fields["data"] = data
	}

	logger.WithFields(fields).Error(err.Error())
}
