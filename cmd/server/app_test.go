package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/patient-api/internal/config"
	"github.com/phrazzld/patient-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                8080,
			LogLevel:            "debug",
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 5,
			IdleTimeoutSeconds:  5,
		},
		Store: config.StoreConfig{
			PatientIDPolicy: "client",
			BookIDPolicy:    "sequential",
			ItemIDPolicy:    "client",
		},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	_, log := logger.SetupTestLogger(t)
	app, err := newApplication(context.Background(), cfg, log)
	require.NoError(t, err)
	return app
}

func TestNewApplicationEmptyStores(t *testing.T) {
	app := newTestApp(t, testConfig())

	ctx := context.Background()
	assert.Equal(t, 0, app.patientStore.Len(ctx))
	assert.Equal(t, 0, app.bookStore.Len(ctx))
	assert.Equal(t, 0, app.itemStore.Len(ctx))
}

func TestNewApplicationSeeds(t *testing.T) {
	cfg := testConfig()
	cfg.Store.SeedFile = filepath.Join("..", "..", "internal", "seed", "testdata", "seed.yaml")

	app := newTestApp(t, cfg)

	ctx := context.Background()
	assert.Equal(t, 2, app.patientStore.Len(ctx))
	assert.Equal(t, 1, app.bookStore.Len(ctx))
	assert.Equal(t, 3, app.itemStore.Len(ctx))

	book, err := app.bookStore.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)
}

func TestNewApplicationErrors(t *testing.T) {
	badSeed := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badSeed, []byte("patients:\n  - id: 1\n    name: \"\"\n    age: 3\n"), 0o600))

	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "unknown patient policy",
			mutate: func(c *config.Config) { c.Store.PatientIDPolicy = "uuid" },
			errMsg: "patient store",
		},
		{
			name:   "unknown item policy",
			mutate: func(c *config.Config) { c.Store.ItemIDPolicy = "" },
			errMsg: "item store",
		},
		{
			name:   "missing seed file",
			mutate: func(c *config.Config) { c.Store.SeedFile = filepath.Join(t.TempDir(), "none.yaml") },
			errMsg: "failed to load seed data",
		},
		{
			name:   "invalid seed record",
			mutate: func(c *config.Config) { c.Store.SeedFile = badSeed },
			errMsg: "failed to apply seed data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			_, log := logger.SetupTestLogger(t)

			app, err := newApplication(context.Background(), cfg, log)

			require.Error(t, err)
			assert.Nil(t, app)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewHTTPServerTimeouts(t *testing.T) {
	app := newTestApp(t, testConfig())

	srv := app.newHTTPServer(http.NewServeMux())

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 5*time.Second, srv.WriteTimeout)
	assert.Equal(t, 5*time.Second, srv.IdleTimeout)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	app := newTestApp(t, testConfig())
	router := app.setupRouter()
	srv := app.newHTTPServer(router)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, srv, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatal("server did not shut down")
	}
}
