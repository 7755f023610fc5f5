package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/AlibekovAA/stride/internal/common/constants"
)

type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// DefaultServerConfig accepts either a bare port or a host:port pair.
func DefaultServerConfig(port string) ServerConfig {
	addr := port
	if !strings.Contains(port, ":") {
		addr = ":" + port
	}
	return ServerConfig{
		Addr:              addr,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

// WithRequestTimeout keeps the write deadline above the per-request handler
// timeout so a slow store save still gets its error envelope out.
func (c ServerConfig) WithRequestTimeout(requestTimeout time.Duration) ServerConfig {
	if floor := requestTimeout + constants.ServerWriteGrace; c.WriteTimeout < floor {
		c.WriteTimeout = floor
	}
	return c
}

func NewServer(cfg ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
