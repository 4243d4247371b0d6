package server_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/JaimeStill/photo-fixer/internal/config"
	"github.com/JaimeStill/photo-fixer/internal/server"
	"github.com/JaimeStill/photo-fixer/pkg/lifecycle"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "2s",
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	srv := server.New(testConfig(), handler, slog.New(slog.DiscardHandler))
	lc := lifecycle.New()

	if err := srv.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	if err := lc.Shutdown(3 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if _, err := http.Get("http://" + srv.Addr() + "/"); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestServer_StartListenError(t *testing.T) {
	lc := lifecycle.New()
	first := server.New(testConfig(), http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	if err := first.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer lc.Shutdown(3 * time.Second)

	_, port, err := net.SplitHostPort(first.Addr())
	if err != nil {
		t.Fatalf("SplitHostPort(%q): %v", first.Addr(), err)
	}
	cfg := testConfig()
	cfg.Port, _ = strconv.Atoi(port)

	second := server.New(cfg, http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	if err := second.Start(lifecycle.New()); err == nil {
		t.Error("Start() succeeded on a port already in use")
	}
}
