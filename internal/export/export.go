// Package export renders the live report through headless Chrome and writes
// per-page PNG images or a combined PDF with deterministic Korean filenames.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/config"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
)

// pageSelector matches one rendered report page in the preview markup.
const pageSelector = ".report-page"

// Result describes one finished export run.
type Result struct {
	Files []string `json:"files"`
	Pages int      `json:"pages"`
}

// Exporter drives the headless-browser capture pipeline.
type Exporter struct {
	cfg     config.ExportConfig
	ctrl    *report.Controller
	baseURL string
	logger  *common.Logger
	now     func() time.Time
}

func New(cfg config.ExportConfig, ctrl *report.Controller, baseURL string, logger *common.Logger) *Exporter {
	return &Exporter{
		cfg:     cfg,
		ctrl:    ctrl,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
	}
}

// ExportPNG re-stamps the document, renders the preview, and writes one PNG
// per report page.
func (e *Exporter) ExportPNG(ctx context.Context) (*Result, error) {
	doc := e.ctrl.StampForExport(ctx)
	stamp := e.now()

	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	bctx, cancel := e.browserContext(ctx)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(bctx,
		e.prepare(),
		chromedp.Nodes(pageSelector, &nodes, chromedp.ByQueryAll),
	); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("no report pages found in preview")
	}

	result := &Result{Pages: len(nodes)}
	for i, node := range nodes {
		var buf []byte
		err := chromedp.Run(bctx,
			chromedp.Screenshot([]cdp.NodeID{node.NodeID}, &buf, chromedp.ByNodeID),
		)
		if err != nil {
			return nil, fmt.Errorf("capture page %d: %w", i+1, err)
		}

		name := common.ExportFileName(stamp, doc.ReportType.Label(), i+1) + ".png"
		path := filepath.Join(e.cfg.OutputDir, name)
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		result.Files = append(result.Files, path)
	}

	e.logger.Info().Int("pages", result.Pages).Msg("exported report pages as PNG")
	return result, nil
}

// ExportPDF re-stamps the document and prints the whole preview to a single
// PDF sized to the report page dimensions.
func (e *Exporter) ExportPDF(ctx context.Context) (*Result, error) {
	doc := e.ctrl.StampForExport(ctx)
	stamp := e.now()

	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	bctx, cancel := e.browserContext(ctx)
	defer cancel()

	var pageCount int
	var buf []byte
	err := chromedp.Run(bctx,
		e.prepare(),
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll('%s').length`, pageSelector), &pageCount),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(inchesFromPixels(e.cfg.PageWidth)).
				WithPaperHeight(inchesFromPixels(e.cfg.PageHeight)).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print preview to PDF: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("no report pages found in preview")
	}

	name := common.ExportFileName(stamp, doc.ReportType.Label(), pageCount) + ".pdf"
	path := filepath.Join(e.cfg.OutputDir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	e.logger.Info().Int("pages", pageCount).Msg("exported report as PDF")
	return &Result{Files: []string{path}, Pages: pageCount}, nil
}

// prepare navigates to the export rendition of the preview page and waits
// for it to settle.
func (e *Exporter) prepare() chromedp.Tasks {
	return chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(e.cfg.PageWidth, e.cfg.PageHeight, 1, false),
		chromedp.Navigate(e.baseURL + "/preview?export=1"),
		chromedp.WaitVisible(pageSelector, chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond),
	}
}

func (e *Exporter) browserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(e.cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	bctx, ctxCancel := chromedp.NewContext(allocCtx)
	bctx, timeoutCancel := context.WithTimeout(bctx, timeout)

	cancel := func() {
		timeoutCancel()
		ctxCancel()
		allocCancel()
	}
	return bctx, cancel
}

// inchesFromPixels converts CSS pixels to print inches at 96 DPI.
func inchesFromPixels(px int64) float64 {
	return float64(px) / 96.0
}
