package scraper

// X.com DOM selectors
// These are isolated here because X changes their DOM frequently
// Update these when scraping breaks

const (
	// A rendered post page has exactly one primary tweet article.
	PostArticle = `article[data-testid="tweet"]`

	// Post content selectors
	PostText      = `[data-testid="tweetText"]`
	PostAuthor    = `[data-testid="User-Name"]`
	PostTimestamp = `time`

	// Login page indicators (for detecting auth walls)
	LoginForm = `[data-testid="loginButton"]`
)

// WaitForPost is the content-ready marker raced against the wait timeout.
const WaitForPost = PostArticle
