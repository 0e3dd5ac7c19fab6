// routes_serve.go - Server-Start und Lifecycle-Management
// Enthaelt: Serve() - Hauptfunktion zum Starten des HTTP-Servers

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/7blacky7/calibprep/calib"
	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/version"
)

// Serve startet den HTTP-Server auf ln und blockiert bis ctx endet oder
// SIGINT/SIGTERM eintrifft
func Serve(ctx context.Context, ln net.Listener, it *calib.Iterator) error {
	slog.Info("server config", "env", envconfig.Values())

	s := &Server{addr: ln.Addr(), it: it}

	h, err := s.GenerateRoutes()
	if err != nil {
		return err
	}

	ctx, done := context.WithCancel(ctx)
	defer done()

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version),
		"entries", it.Len(), "batches", it.NumBatches())
	srvr := &http.Server{
		Handler:     h,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// ctrl+c oder Abbruch des Aufrufers beendet den Server
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
		case <-ctx.Done():
		}
		srvr.Close()
		done()
	}()

	err = srvr.Serve(ln)
	// If server is closed from the signal handler, wait for the ctx to be done
	// otherwise error out quickly
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-ctx.Done()
	return nil
}
