// Package scraper extracts author and post fields from individual post URLs
// through a browser session, isolating per-URL failures so one bad URL never
// aborts a batch.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/dipu67/analyzer/internal/browser"
	"github.com/dipu67/analyzer/internal/config"
	"github.com/dipu67/analyzer/internal/types"
)

// ErrNavigationTimeout means the page never finished loading within the
// configured navigation timeout.
var ErrNavigationTimeout = errors.New("navigation timeout, platform may be blocking automated access")

// ErrExtraction means navigation succeeded but the content marker never
// appeared within the configured wait timeout.
var ErrExtraction = errors.New("post content never rendered")

// Scraper extracts posts from X.com post pages
type Scraper struct {
	cfg config.ScrapeConfig
}

// New creates a new scraper
func New(cfg config.ScrapeConfig) *Scraper {
	return &Scraper{cfg: cfg}
}

// rawPost represents the raw data extracted from the DOM via JavaScript.
// Every field degrades to "" when its sub-element is missing.
type rawPost struct {
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
}

// extractJS pulls the author block and post block out of the first rendered
// tweet article. Optional chaining keeps missing sub-elements best-effort.
const extractJS = `
	(function() {
		const result = { displayName: '', username: '', text: '', timestamp: '' };

		const article = document.querySelector('article[data-testid="tweet"]');
		if (!article) return result;

		const userNameEl = article.querySelector('[data-testid="User-Name"]');
		if (userNameEl) {
			const nameSpan = userNameEl.querySelector('span');
			result.displayName = nameSpan?.textContent?.trim() || '';

			const handleLink = userNameEl.querySelector('a[href^="/"]');
			result.username = handleLink?.getAttribute('href')?.replace('/', '') || '';
		}

		const textEl = article.querySelector('[data-testid="tweetText"]');
		result.text = textEl?.textContent?.trim() || '';

		const timeEl = article.querySelector('time');
		result.timestamp = timeEl?.getAttribute('datetime') || '';

		return result;
	})()
`

// Extract navigates to a single post URL within the session page and pulls
// structured fields from the rendered document. Navigation races against the
// navigation timeout and the content marker against the wait timeout; field
// reads are best-effort and degrade to empty strings.
func (s *Scraper) Extract(ctx context.Context, url string) (types.ExtractedPost, error) {
	post := types.ExtractedPost{URL: url, ScrapedAt: time.Now()}

	navCtx, navCancel := context.WithTimeout(ctx, s.cfg.NavigationTimeoutDuration())
	defer navCancel()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(navCtx.Err(), context.DeadlineExceeded) {
			return post, ErrNavigationTimeout
		}
		return post, fmt.Errorf("navigation failed: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, s.cfg.WaitTimeoutDuration())
	defer waitCancel()

	if err := chromedp.Run(waitCtx, chromedp.WaitVisible(WaitForPost, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return post, ErrExtraction
		}
		return post, fmt.Errorf("waiting for post content: %w", err)
	}

	var raw rawPost
	if err := chromedp.Run(ctx, chromedp.Evaluate(extractJS, &raw)); err != nil {
		return post, fmt.Errorf("failed to extract post from DOM: %w", err)
	}

	post.Author = types.Author{DisplayName: raw.DisplayName, Username: raw.Username}
	post.Text = raw.Text
	post.Timestamp = raw.Timestamp
	return post, nil
}

// ScrapeBatch opens one browser session and extracts each URL sequentially,
// converting per-URL errors into error entries so the batch always returns
// exactly one ExtractedPost per input URL, in input order. The only error it
// returns itself is the fatal session-open failure.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string) ([]types.ExtractedPost, error) {
	session, err := browser.Open(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	posts := make([]types.ExtractedPost, 0, len(urls))
	for _, url := range urls {
		post, err := s.Extract(session.Context(), url)
		if err != nil {
			log.Printf("scraper: %s: %v", url, err)
			post.Error = err.Error()
		}
		posts = append(posts, post)
	}

	return posts, nil
}
