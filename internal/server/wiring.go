package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/capture"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/config"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/db"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/drafts"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/llm"
)

// NewFromConfig builds a server from the application config and the
// environment. Each collaborator is optional:
//   - no database_url: auth and saved résumés answer 503, drafts stay local
//   - no api_key: upload and optimize answer 503
//   - PDF capture is always configured; a missing Chrome fails per request
func NewFromConfig(ctx context.Context, app config.Config) (*Server, error) {
	auth, err := config.NewAuthConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load auth config: %w", err)
	}

	var (
		deps    Dependencies
		closers []func()
	)

	if app.DatabaseURL != "" {
		database, err := db.Connect(ctx, app.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		deps.DB = database
		deps.Drafts = drafts.NewDBStore(database)
		closers = append(closers, database.Close)
		log.Printf("[server] using PostgreSQL for accounts, resumes and drafts")
	} else {
		log.Printf("[server] DATABASE_URL not set: accounts and saved resumes are disabled")
	}

	if deps.Drafts == nil && app.DraftDir != "" {
		store, err := drafts.NewFileStore(app.DraftDir)
		if err != nil {
			return nil, err
		}
		deps.Drafts = store
		log.Printf("[server] drafts stored under %s", app.DraftDir)
	}

	if app.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.ConfigFromEnv(), app.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		deps.LLM = client
		closers = append(closers, func() {
			if err := client.Close(); err != nil {
				log.Printf("[server] closing LLM client: %v", err)
			}
		})
	} else {
		log.Printf("[server] GEMINI_API_KEY not set: upload and optimize are disabled")
	}

	capturer := capture.NewChromeCapturer()
	if app.ChromePath != "" {
		capturer.ExecPath = app.ChromePath
	}
	if app.CaptureTimeout > 0 {
		capturer.Timeout = time.Duration(app.CaptureTimeout) * time.Second
	}
	capturer.Verbose = app.Verbose
	deps.Capturer = capturer

	s, err := New(Config{
		Addr:           app.Addr,
		AllowedOrigins: app.AllowedOrigins,
		Auth:           *auth,
	}, deps)
	if err != nil {
		for _, c := range closers {
			c()
		}
		return nil, err
	}
	for _, c := range closers {
		s.OnShutdown(c)
	}
	return s, nil
}
