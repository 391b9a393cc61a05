// Package browser owns the headless-browser session: one automation engine
// process, one page, and the navigation/resource policy applied to it.
package browser

import (
	"github.com/chromedp/chromedp"

	"github.com/dipu67/analyzer/internal/config"
)

// Options returns chromedp allocator options for the configured scrape
// profile, with anti-bot-detection measures. All sessions use this to keep a
// consistent fingerprint.
func Options(cfg config.ScrapeConfig) []chromedp.ExecAllocatorOption {
	ua := cfg.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}

	width, height := cfg.ViewportWidth, cfg.ViewportHeight
	if width <= 0 || height <= 0 {
		width, height = 1920, 1080
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),

		// Prevent navigator.webdriver = true detection; post platforms
		// check this before rendering content to automated clients.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		chromedp.UserAgent(ua),
		chromedp.WindowSize(width, height),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if cfg.Headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	return opts
}
