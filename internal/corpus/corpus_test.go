package corpus

import (
	"testing"

	"github.com/dipu67/analyzer/internal/types"
)

func TestMergeJoinsInInputOrder(t *testing.T) {
	t.Parallel()

	posts := []types.ExtractedPost{
		{URL: "https://x.com/a/status/1", Text: "first post"},
		{URL: "https://x.com/b/status/2", Text: "second post"},
		{URL: "https://x.com/c/status/3", Text: "third post"},
	}

	got := Merge(posts)
	want := "first post\n\nsecond post\n\nthird post"
	if got != want {
		t.Fatalf("unexpected corpus:\n%q\nwant:\n%q", got, want)
	}
}

func TestMergeSkipsErrorAndEmptyPosts(t *testing.T) {
	t.Parallel()

	posts := []types.ExtractedPost{
		{URL: "u1", Text: "kept"},
		{URL: "u2", Text: "dropped", Error: "navigation timeout"},
		{URL: "u3", Text: "   "},
		{URL: "u4", Text: "also kept"},
	}

	got := Merge(posts)
	want := "kept\n\nalso kept"
	if got != want {
		t.Fatalf("unexpected corpus: %q", got)
	}
}

func TestMergeEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Merge(nil); got != "" {
		t.Fatalf("expected empty corpus, got %q", got)
	}
	if got := Merge([]types.ExtractedPost{{URL: "u", Error: "boom"}}); got != "" {
		t.Fatalf("expected empty corpus, got %q", got)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	t.Parallel()

	posts := []types.ExtractedPost{
		{URL: "u1", Text: "one"},
		{URL: "u2", Error: "extraction failed"},
		{URL: "u3", Text: "two"},
	}

	first := Merge(posts)
	second := Merge(posts)
	if first != second {
		t.Fatalf("merge not deterministic: %q vs %q", first, second)
	}
}
