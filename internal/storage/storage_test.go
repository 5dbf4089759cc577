package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "orders.xlsx", ObjectKey("", "orders.xlsx"))
	assert.Equal(t, "plans/orders.xlsx", ObjectKey("plans", "orders.xlsx"))
	assert.Equal(t, "plans/2026/orders.xlsx", ObjectKey("/plans/2026/", "orders.xlsx"))
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint   string
		useSSL     bool
		wantHost   string
		wantSecure bool
	}{
		{"https://s3.example.com/", false, "s3.example.com", true},
		{"http://minio:9000", true, "minio:9000", false},
		{"minio:9000", true, "minio:9000", true},
		{"//minio:9000", false, "minio:9000", false},
	}
	for _, tt := range tests {
		host, secure := normalizeEndpoint(tt.endpoint, tt.useSSL)
		assert.Equal(t, tt.wantHost, host, tt.endpoint)
		assert.Equal(t, tt.wantSecure, secure, tt.endpoint)
	}
}

func TestNewS3Client(t *testing.T) {
	_, err := NewS3Client(S3Config{})
	assert.Error(t, err)

	_, err = NewS3Client(S3Config{Endpoint: "localhost:9000", Bucket: "plans"})
	assert.ErrorContains(t, err, "credentials")

	c, err := NewS3Client(S3Config{
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "plans",
	})
	require.NoError(t, err)
	assert.Equal(t, "plans", c.bucket)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("a/b.CSV"))
	assert.Contains(t, contentType("orders.xlsx"), "spreadsheetml")
	assert.Equal(t, "application/octet-stream", contentType("notes"))
}
