package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/chord-scout/internal/api"
	"github.com/RyanBlaney/chord-scout/internal/app"
	"github.com/RyanBlaney/chord-scout/pkg/logging"
)

var (
	// Serve command flags
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the progression engine over HTTP",
	Long: `Start an HTTP server exposing progression search, related-song
discovery, analysis and song management endpoints backed by the library.

Endpoints:
  GET    /health
  POST   /api/search
  POST   /api/related
  POST   /api/analyze
  GET    /api/songs
  POST   /api/songs
  GET    /api/songs/{id}
  DELETE /api/songs/{id}

Examples:
  chord-scout serve
  chord-scout serve --host 0.0.0.0 --port 9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "",
		"address to bind (overrides configuration)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0,
		"port to listen on (overrides configuration)")
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := app.NewApp(newAppContext())
	if err != nil {
		return err
	}
	defer application.Close()

	store, err := application.Store()
	if err != nil {
		return err
	}

	cfg := application.Config()
	serverCfg := cfg.Server
	if serveHost != "" {
		serverCfg.Host = serveHost
	}
	if servePort > 0 {
		serverCfg.Port = servePort
	}

	handler := api.NewHandler(store, cfg, application.Logger())
	server := api.NewServer(handler, serverCfg, application.Logger())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		application.Logger().Info("shutdown signal received", logging.Fields{
			"signal": sig.String(),
		})
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
		return <-errCh
	}
}
