package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/server"
)

var (
	serveAddr     string
	serveDBURL    string
	serveDraftDir string
	serveOrigins  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server for the résumé builder.

Accounts and saved résumés need DATABASE_URL; upload and optimize need
GEMINI_API_KEY. Without them those endpoints answer 503 and the rest of the
API (templates, preview, export, drafts) keeps working.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default \":8080\", or :$PORT)")
	serveCmd.Flags().StringVar(&serveDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	serveCmd.Flags().StringVar(&serveDraftDir, "draft-dir", "", "Store drafts as files here when no database is configured")
	serveCmd.Flags().StringVar(&serveOrigins, "origins", "", "Comma-separated allowed CORS origins (default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDBURL
	}
	if cmd.Flags().Changed("draft-dir") {
		cfg.DraftDir = serveDraftDir
	}
	if cmd.Flags().Changed("origins") {
		cfg.AllowedOrigins = splitList(serveOrigins)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.NewFromConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
