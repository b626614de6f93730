package http

import (
	"context"
	"currencyconverter/internal/config"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Start serves handler on cfg.Port and shuts the server down gracefully on ctx cancellation.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	return Serve(ctx, listener, handler)
}

// Serve is Start over an already bound listener.
func Serve(ctx context.Context, listener net.Listener, handler http.Handler) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	server := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}
