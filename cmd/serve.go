package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/serenelab/serene/internal/serene"
	"github.com/serenelab/serene/internal/web"
	"github.com/spf13/cobra"
)

var listenAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat UI",
	Long: `Serve the browser chat UI over HTTP.

Each browser session gets its own in-memory conversation; nothing is
persisted. If no API key is configured, the page offers an input to set
one for the session only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		if cmd.Flags().Changed("listen") {
			cfg.ListenAddr = listenAddr
		}

		factory := func(token string) (serene.Provider, error) {
			return newProvider(cfg, token)
		}
		server := web.NewServer(cfg, factory)

		log.Printf("%s listening on %s", cfg.AppTitle, cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, server); err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "address to listen on (default from config, :8990)")
}
