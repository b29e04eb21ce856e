package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/server"
	"github.com/mj1618/mobile-locator/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing mobile-locator tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes scanning, locator
lookup, verification and device actions as tools. Scans are cached for the
lifetime of the server, so taps and verification reuse the last scan.

Supported transports:
  stdio   Standard I/O (default, for MCP clients)
  http    Streamable HTTP transport (for remote agents)

Examples:
  mobile-locator serve --fixture-dir testdata/login
  mobile-locator serve --backend appium --transport http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, http (default from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for the http transport (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	scfg := server.Config{
		Transport: cfg.Server.Transport,
		Port:      cfg.Server.Port,
		Version:   version.Version,
	}
	if cmd.Flags().Changed("transport") {
		scfg.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		scfg.Port, _ = cmd.Flags().GetInt("port")
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	return server.New(svc, scfg, log).Serve(scfg)
}
