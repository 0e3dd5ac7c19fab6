// cmd_serve.go - Batch-Server starten
// Hauptfunktionen: RunServer, versionHandler
package cmd

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/7blacky7/calibprep/envconfig"
	"github.com/7blacky7/calibprep/server"
	"github.com/7blacky7/calibprep/version"
)

// RunServer - Startet den Batch-Server auf CALIB_HOST
func RunServer(cmd *cobra.Command, _ []string) error {
	it, err := newIterator(cmd)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", envconfig.Host().Host)
	if err != nil {
		return err
	}

	err = server.Serve(cmd.Context(), ln, it)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// versionHandler - Gibt die Version aus
func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "calibprep version is %s\n", version.Version)
}

// newServeCmd - Erstellt den serve Command
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Serve calibration batches over HTTP",
		Args:    cobra.ExactArgs(0),
		RunE:    RunServer,
	}
}
