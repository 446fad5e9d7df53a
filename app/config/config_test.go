package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://jsonplaceholder.typicode.com", cfg.ServiceURL)
	assert.Equal(t, "data/badger", cfg.DBPath)
	assert.Equal(t, 1, cfg.PostID)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.UsesLocalService())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(envFrom(map[string]string{
		"POSTVIEW_ADDR":            "127.0.0.1:9000",
		"POSTVIEW_SERVICE_URL":     "local",
		"POSTVIEW_DB_PATH":         "/tmp/db",
		"POSTVIEW_POST_ID":         "3",
		"POSTVIEW_REQUEST_TIMEOUT": "250ms",
		"LOG_LEVEL":                "DEBUG",
		"LOG_FORMAT":               "text",
	}))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.True(t, cfg.UsesLocalService())
	assert.Equal(t, 3, cfg.PostID)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"post id not a number", map[string]string{"POSTVIEW_POST_ID": "one"}},
		{"post id zero", map[string]string{"POSTVIEW_POST_ID": "0"}},
		{"bad timeout", map[string]string{"POSTVIEW_REQUEST_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"POSTVIEW_REQUEST_TIMEOUT": "-1s"}},
		{"bad service url", map[string]string{"POSTVIEW_SERVICE_URL": "not a url"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envFrom(tt.env))
			assert.Error(t, err)
		})
	}
}
