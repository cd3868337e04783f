package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Letter paper in inches
const (
	letterWidth  = 8.5
	letterHeight = 11.0
	pageMargin   = 0.5
)

// DefaultPDFTimeout bounds a single PDF print
const DefaultPDFTimeout = 60 * time.Second

// ChromeRenderer prints HTML to PDF with headless Chrome.
type ChromeRenderer struct {
	// ExecPath overrides the Chrome binary; empty uses CHROME_PATH or the chromedp default lookup.
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// NewChromeRenderer creates a renderer with the default timeout.
func NewChromeRenderer(execPath string, verbose bool) *ChromeRenderer {
	return &ChromeRenderer{ExecPath: execPath, Timeout: DefaultPDFTimeout, Verbose: verbose}
}

// RenderPDF implements PDFRenderer.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := r.execPath(); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	if r.Verbose {
		log.Printf("[export] starting headless browser for %s", htmlPath)
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(false).
				WithPaperWidth(letterWidth).
				WithPaperHeight(letterHeight).
				WithMarginTop(pageMargin).
				WithMarginBottom(pageMargin).
				WithMarginLeft(pageMargin).
				WithMarginRight(pageMargin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	if r.Verbose {
		log.Printf("[export] rendered PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

func (r *ChromeRenderer) execPath() string {
	if r.ExecPath != "" {
		return r.ExecPath
	}
	return os.Getenv("CHROME_PATH")
}
