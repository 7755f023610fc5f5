package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlibekovAA/stride/internal/common/logger"
)

func TestShutdown_RunsHooksInOrder(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	var order []int
	hooks := []ShutdownHook{
		func(ctx context.Context) error { order = append(order, 1); return nil },
		func(ctx context.Context) error { order = append(order, 2); return nil },
	}

	Shutdown(ts.Config, logger.NewWithWriter(io.Discard, "test", "debug"), "test", hooks)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected hooks 1,2, got %v", order)
	}
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig("3000")
	srv := NewServer(cfg, http.NotFoundHandler())

	if srv.Addr != ":3000" || srv.ReadHeaderTimeout == 0 || srv.IdleTimeout == 0 {
		t.Errorf("unexpected server %+v", cfg)
	}
}

func TestDefaultServerConfig_HostPort(t *testing.T) {
	if got := DefaultServerConfig("127.0.0.1:8080").Addr; got != "127.0.0.1:8080" {
		t.Errorf("expected host:port to be kept, got %q", got)
	}
}

func TestWithRequestTimeout_RaisesWriteTimeout(t *testing.T) {
	cfg := DefaultServerConfig("3000").WithRequestTimeout(time.Minute)
	if cfg.WriteTimeout < time.Minute {
		t.Errorf("expected write timeout above request timeout, got %v", cfg.WriteTimeout)
	}

	short := DefaultServerConfig("3000").WithRequestTimeout(time.Second)
	if short.WriteTimeout != DefaultServerConfig("3000").WriteTimeout {
		t.Errorf("expected default write timeout to be kept, got %v", short.WriteTimeout)
	}
}
