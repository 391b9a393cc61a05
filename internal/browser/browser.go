package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/dipu67/analyzer/internal/config"
)

// ErrBrowserUnavailable means the automation runtime could not be started at
// all (typically a missing Chrome executable). It is fatal to the whole
// batch, unlike any per-page failure.
var ErrBrowserUnavailable = errors.New("browser runtime unavailable")

// Session owns one browser process and one page. It is exclusively owned by
// the batch call that opened it and must be closed on every exit path.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// resourceTypes maps the recognized blocked-resource option strings onto CDP
// resource types. Strings outside this set are ignored.
var resourceTypes = map[string]network.ResourceType{
	"document":   network.ResourceTypeDocument,
	"stylesheet": network.ResourceTypeStylesheet,
	"image":      network.ResourceTypeImage,
	"media":      network.ResourceTypeMedia,
	"font":       network.ResourceTypeFont,
	"script":     network.ResourceTypeScript,
	"xhr":        network.ResourceTypeXHR,
	"fetch":      network.ResourceTypeFetch,
}

// Open starts the browser process, installs the request-interception rule
// for blocked resource types, and returns a live session. The returned error
// wraps ErrBrowserUnavailable when the runtime cannot start.
func Open(ctx context.Context, cfg config.ScrapeConfig) (*Session, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, Options(cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		browserCancel()
		allocCancel()
	}

	blocked := blockedSet(cfg.BlockedResources)
	installInterceptor(browserCtx, blocked)

	// The first Run starts the browser process; failure here is an
	// environment problem, not a page problem.
	if err := chromedp.Run(browserCtx, fetch.Enable()); err != nil {
		cancel()
		if IsExecNotFound(err) {
			return nil, fmt.Errorf("%w: chrome executable not found: %v", ErrBrowserUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserUnavailable, err)
	}

	return &Session{ctx: browserCtx, cancel: cancel}, nil
}

// Context returns the page context used for navigation and extraction.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close releases the browser process and page. It is idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(s.cancel)
}

func blockedSet(names []string) map[network.ResourceType]bool {
	blocked := make(map[network.ResourceType]bool, len(names))
	for _, name := range names {
		if rt, ok := resourceTypes[strings.ToLower(strings.TrimSpace(name))]; ok {
			blocked[rt] = true
		}
	}
	return blocked
}

// installInterceptor aborts paused requests whose resource type is blocked
// and continues all others.
func installInterceptor(browserCtx context.Context, blocked map[network.ResourceType]bool) {
	c := chromedp.FromContext(browserCtx)

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		e, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}

		// Resolution must not block the event loop.
		go func() {
			ectx := cdp.WithExecutor(browserCtx, c.Target)
			if blocked[e.ResourceType] {
				if err := fetch.FailRequest(e.RequestID, network.ErrorReasonBlockedByClient).Do(ectx); err != nil {
					log.Printf("browser: failed to abort %s request: %v", e.ResourceType, err)
				}
				return
			}
			if err := fetch.ContinueRequest(e.RequestID).Do(ectx); err != nil {
				log.Printf("browser: failed to continue request: %v", err)
			}
		}()
	})
}

// IsExecNotFound reports whether err looks like a missing browser binary.
// chromedp surfaces this as an exec lookup failure.
func IsExecNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	return strings.Contains(err.Error(), "executable file not found")
}
