// Package corpus merges extracted post text into the single string the
// analyzer classifies.
package corpus

import (
	"strings"

	"github.com/dipu67/analyzer/internal/types"
)

// Merge concatenates the text of posts that extracted successfully, joined
// by a blank line in input order, trimmed. Posts carrying an error or no
// text are skipped. Pure and deterministic.
func Merge(posts []types.ExtractedPost) string {
	parts := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.Error != "" || strings.TrimSpace(p.Text) == "" {
			continue
		}
		parts = append(parts, p.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
