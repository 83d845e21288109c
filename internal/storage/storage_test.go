package storage

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"atlas/internal/config"
)

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/0b6d5c1e.json", ReportKey("0b6d5c1e"))
}

func TestNotFound(t *testing.T) {
	for _, code := range []string{"NoSuchKey", "NoSuchObject"} {
		err := notFound(minio.ErrorResponse{Code: code, Message: "The specified key does not exist."})
		assert.ErrorIs(t, err, ErrNotFound, code)
		assert.ErrorContains(t, err, "The specified key does not exist.")
	}

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.NotErrorIs(t, notFound(denied), ErrNotFound)

	other := errors.New("connection refused")
	assert.Equal(t, other, notFound(other))
}

func TestDownloadParams(t *testing.T) {
	assert.Equal(t, url.Values{
		"response-content-disposition": {`attachment; filename="abc.json"`},
	}, downloadParams(ReportKey("abc")))
}

func TestNewMinIO_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want error
	}{
		{"missing endpoint", config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}, ErrEndpointRequired},
		{"missing secret", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", Bucket: "b"}, ErrCredentialsRequired},
		{"missing bucket", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}, ErrBucketRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, s)
		})
	}
}
