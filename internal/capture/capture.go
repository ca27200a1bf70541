// Package capture prints export markup to an A4 PDF with headless Chrome.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches.
const (
	PaperWidthInches  = 8.27
	PaperHeightInches = 11.69
)

// DefaultTimeout bounds a whole capture, browser start included.
const DefaultTimeout = 60 * time.Second

// ErrEmptyMarkup is returned when there is nothing to print.
var ErrEmptyMarkup = errors.New("markup is empty")

// Capturer turns self-contained page markup into PDF bytes.
type Capturer interface {
	PDF(ctx context.Context, markup string) ([]byte, error)
}

// ChromeCapturer drives a local Chrome or Chromium through chromedp.
// Each call starts its own browser so captures never share state.
type ChromeCapturer struct {
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromeCapturer returns a capturer honouring CHROME_PATH.
func NewChromeCapturer() *ChromeCapturer {
	return &ChromeCapturer{
		ExecPath: os.Getenv("CHROME_PATH"),
		Timeout:  DefaultTimeout,
	}
}

// PDF loads markup into a blank page and prints it with zero margins and
// backgrounds on, letting the markup's @page rule pick the paper size.
func (c *ChromeCapturer) PDF(ctx context.Context, markup string) ([]byte, error) {
	if markup == "" {
		return nil, ErrEmptyMarkup
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if c.Verbose {
		log.Printf("[capture] printing %d bytes of markup", len(markup))
	}
	start := time.Now()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = PrintParams().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf capture failed: %w", err)
	}

	if c.Verbose {
		log.Printf("[capture] produced %d bytes in %s", len(pdf), time.Since(start).Round(time.Millisecond))
	}
	return pdf, nil
}

func (c *ChromeCapturer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}
	return opts
}

// PrintParams are the print settings for every capture.
func PrintParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(PaperWidthInches).
		WithPaperHeight(PaperHeightInches).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0).
		WithPrintBackground(true).
		WithPreferCSSPageSize(true)
}
