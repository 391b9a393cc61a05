package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dipu67/analyzer/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "analyzer.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() types.BatchResult {
	return types.BatchResult{
		Corpus:     "join our testnet airdrop now",
		Success:    true,
		TotalPosts: 2,
		Analysis: types.AnalysisResult{
			ContentSummary:    "Testnet campaign chatter.",
			Category:          "Testnet Program",
			PotentialScore:    8,
			HasOpportunity:    true,
			Summary:           "Active testnet with rewards.",
			KeyPoints:         []string{"Testnet is live"},
			ActionSteps:       []string{"Join the testnet"},
			OpportunityType:   "TestNet Rewards",
			MentionedEntities: []string{"ZkSyncEra"},
			RiskLevel:         types.LevelLow,
			ConfidenceLevel:   types.LevelHigh,
			EstimatedTimeline: "immediate",
			AdditionalContext: "Snapshot date unannounced.",
		},
	}
}

func samplePosts() []types.ExtractedPost {
	return []types.ExtractedPost{
		{
			URL:       "https://x.com/a/status/1",
			Author:    types.Author{DisplayName: "Alpha", Username: "alpha"},
			Text:      "join our testnet airdrop now",
			Timestamp: "2026-08-01T10:00:00.000Z",
			ScrapedAt: time.Now(),
		},
		{
			URL:       "https://x.com/b/status/2",
			ScrapedAt: time.Now(),
			Error:     "post content never rendered",
		},
	}
}

func TestSaveReportRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	id, err := s.SaveReport(sampleResult(), samplePosts())
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if id == "" {
		t.Fatal("SaveReport returned empty id")
	}

	reports, err := s.RecentReports(10)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	r := reports[0]
	if r.ID != id || r.Category != "Testnet Program" || r.PotentialScore != 8 {
		t.Fatalf("summary wrong: %+v", r)
	}
	if !r.HasOpportunity || !r.Success || r.TotalPosts != 2 {
		t.Fatalf("summary flags wrong: %+v", r)
	}
}

func TestReportPostsPreserveOrderAndErrors(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	id, err := s.SaveReport(sampleResult(), samplePosts())
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	posts, err := s.ReportPosts(id)
	if err != nil {
		t.Fatalf("ReportPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("got %d posts, want 2", len(posts))
	}
	if posts[0].URL != "https://x.com/a/status/1" || posts[0].Author.Username != "alpha" {
		t.Fatalf("first post wrong: %+v", posts[0])
	}
	if posts[1].Error != "post content never rendered" || posts[1].Text != "" {
		t.Fatalf("failed post wrong: %+v", posts[1])
	}
}

func TestRecentReportsNewestFirst(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	first := sampleResult()
	if _, err := s.SaveReport(first, nil); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	second := sampleResult()
	second.Analysis.Category = "DeFi"
	newest, err := s.SaveReport(second, nil)
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	reports, err := s.RecentReports(10)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].ID != newest || reports[0].Category != "DeFi" {
		t.Fatalf("newest report not first: %+v", reports)
	}
}

func TestRecentReportsHonorsLimit(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.SaveReport(sampleResult(), nil); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	reports, err := s.RecentReports(2)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
}

func TestFailedBatchReportRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	result := types.BatchResult{
		Success:  false,
		Error:    "failed to start browser",
		Analysis: types.AnalysisResult{Category: types.CategoryGeneral},
	}
	id, err := s.SaveReport(result, nil)
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	reports, err := s.RecentReports(1)
	if err != nil {
		t.Fatalf("RecentReports: %v", err)
	}
	if reports[0].ID != id || reports[0].Success {
		t.Fatalf("failure report wrong: %+v", reports[0])
	}

	posts, err := s.ReportPosts(id)
	if err != nil {
		t.Fatalf("ReportPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}
}
