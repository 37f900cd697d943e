package storage_test

import (
	"testing"

	"bom-merger/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"PlainEndpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "bom"}},
		{"HTTPScheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"HTTPSScheme", storage.Config{Endpoint: "https://s3.amazonaws.com", UseSSL: true, Region: "us-east-1", TimeoutSeconds: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
