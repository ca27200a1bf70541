package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TheSagarV/ATS-AI-RESUME/internal/capture"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/config"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/document"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/observability"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/rendering"
	"github.com/TheSagarV/ATS-AI-RESUME/internal/types"
)

// maxParallelRenders bounds concurrent renders; PDF capture starts a browser each.
const maxParallelRenders = 4

var (
	renderTemplate string
	renderFormat   string
	renderOutDir   string
	renderAll      bool
)

// newCapturer builds the PDF backend. Tests replace it.
var newCapturer = func(cfg config.Config) capture.Capturer {
	c := capture.NewChromeCapturer()
	if cfg.ChromePath != "" {
		c.ExecPath = cfg.ChromePath
	}
	if cfg.CaptureTimeout > 0 {
		c.Timeout = time.Duration(cfg.CaptureTimeout) * time.Second
	}
	c.Verbose = cfg.Verbose
	return c
}

var renderCmd = &cobra.Command{
	Use:   "render <document.json|->",
	Short: "Render a résumé document with one or every template",
	Long: `Render a stored résumé document as a component tree (JSON), A4 markup (HTML)
or a PDF. The document is repaired the same way the API repairs saved blobs.

A single tree or HTML render without --out is written to stdout. Otherwise one
file per template is written to the output directory as <template>.<format>.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id (unknown ids fall back to classic)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: tree, html or pdf (default html)")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "Output directory")
	renderCmd.Flags().BoolVar(&renderAll, "all", false, "Render every registered template")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = renderTemplate
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = renderFormat
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = renderOutDir
	}
	cfg = cfg.MergeWithDefaults(config.Config{Format: config.FormatHTML})
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := document.Decode(data)
	if err != nil {
		return err
	}

	// Without --template or a config value the document's saved design decides.
	cfg.Template = rendering.TemplateFor(cfg.Template, doc)

	registry := rendering.DefaultRegistry()
	var renderers []*rendering.Renderer
	if renderAll {
		for _, info := range registry.List() {
			renderers = append(renderers, registry.Get(info.ID))
		}
	} else {
		if cfg.Template != "" && !registry.Has(cfg.Template) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown template %q, using %q\n", cfg.Template, registry.Resolve(cfg.Template))
		}
		renderers = append(renderers, registry.Get(cfg.Template))
	}

	var capturer capture.Capturer
	if cfg.Format == config.FormatPDF {
		capturer = newCapturer(cfg)
	}

	toStdout := !renderAll && cfg.OutputDir == "" && cfg.Format != config.FormatPDF
	if !toStdout {
		if cfg.OutputDir == "" {
			cfg.OutputDir = "."
		}
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outputs := make([][]byte, len(renderers))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelRenders)
	for i, r := range renderers {
		g.Go(func() error {
			out, err := renderOne(ctx, r, doc, cfg.Format, capturer)
			if err != nil {
				return fmt.Errorf("template %s: %w", r.ID(), err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if toStdout {
		_, err := cmd.OutOrStdout().Write(outputs[0])
		return err
	}

	results := make([]observability.RenderResult, 0, len(renderers))
	for i, r := range renderers {
		path := filepath.Join(cfg.OutputDir, r.ID()+"."+extension(cfg.Format))
		if err := os.WriteFile(path, outputs[i], 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		results = append(results, observability.RenderResult{
			TemplateID: r.ID(),
			Format:     cfg.Format,
			Path:       path,
			Bytes:      len(outputs[i]),
		})
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintRenderResults(results)
	} else {
		for _, res := range results {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Path)
		}
	}
	return nil
}

// renderOne produces one template's output in the requested format.
func renderOne(ctx context.Context, r *rendering.Renderer, doc types.Document, format string, capturer capture.Capturer) ([]byte, error) {
	switch format {
	case config.FormatTree:
		out, err := json.MarshalIndent(r.Tree(doc), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case config.FormatPDF:
		markup, err := r.Markup(doc)
		if err != nil {
			return nil, err
		}
		return capturer.PDF(ctx, markup)
	default:
		markup, err := r.Markup(doc)
		if err != nil {
			return nil, err
		}
		return []byte(markup), nil
	}
}

func extension(format string) string {
	if format == config.FormatTree {
		return "json"
	}
	return format
}
