package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gogemini-wallpapers/internal/config"
	"gogemini-wallpapers/internal/logger"
)

func TestNewServer_RequiresAddress(t *testing.T) {
	_, err := NewServer(http.NewServeMux(), config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoAddress)
}

func TestServe_ShutsDownOnContextCancel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv, err := NewServer(mux, config.Server{
		HTTPAddress:     "127.0.0.1:0",
		ShutdownTimeout: config.Duration(time.Second),
	}, logger.Nop())
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.(*server).serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
