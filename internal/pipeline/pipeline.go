// Package pipeline drives one batch: scrape every URL, merge the surviving
// text into a corpus, classify it, and wrap the outcome in the stable
// envelope collaborators consume.
package pipeline

import (
	"context"
	"log"

	"github.com/dipu67/analyzer/internal/analyzer"
	"github.com/dipu67/analyzer/internal/corpus"
	"github.com/dipu67/analyzer/internal/types"
)

// PostSource produces one ExtractedPost per input URL, in input order, with
// per-URL failures recorded on the post. The returned error is reserved for
// the fatal case where the browser session could not be created at all.
type PostSource interface {
	ScrapeBatch(ctx context.Context, urls []string) ([]types.ExtractedPost, error)
}

// Pipeline is immutable after construction and safe for concurrent batches;
// each Run opens and closes its own browser session through the source.
type Pipeline struct {
	source   PostSource
	analyzer *analyzer.Analyzer
}

// New wires a post source and an analyzer into a pipeline.
func New(source PostSource, a *analyzer.Analyzer) *Pipeline {
	return &Pipeline{source: source, analyzer: a}
}

// Run processes a batch of post URLs into the {corpus, success, totalPosts,
// analysis} envelope. Success is false only when the browser session could
// not be created; every other failure degrades to a per-post error entry or
// a strategy fallback.
func (p *Pipeline) Run(ctx context.Context, urls []string) types.BatchResult {
	result, _ := p.RunDetailed(ctx, urls)
	return result
}

// RunDetailed additionally returns the raw post array for collaborators
// that need per-post detail (persistence, dashboards).
func (p *Pipeline) RunDetailed(ctx context.Context, urls []string) (types.BatchResult, []types.ExtractedPost) {
	posts, err := p.source.ScrapeBatch(ctx, urls)
	if err != nil {
		log.Printf("pipeline: batch failed: %v", err)
		return types.BatchResult{
			Success:  false,
			Analysis: analyzer.EmptyAnalysis(),
			Error:    err.Error(),
		}, nil
	}

	merged := corpus.Merge(posts)

	return types.BatchResult{
		Corpus:     merged,
		Success:    true,
		TotalPosts: len(posts),
		Analysis:   p.analyzer.Analyze(ctx, merged),
	}, posts
}
