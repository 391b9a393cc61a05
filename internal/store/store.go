// Package store persists batch reports, their per-post detail, and analysis
// rows in a local SQLite database.
package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dipu67/analyzer/internal/types"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		total_posts INTEGER NOT NULL,
		error TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL REFERENCES reports(id),
		url TEXT NOT NULL,
		author_name TEXT,
		author_handle TEXT,
		text TEXT,
		timestamp TEXT,
		scraped_at DATETIME NOT NULL,
		error TEXT
	);

	CREATE TABLE IF NOT EXISTS analyses (
		report_id TEXT PRIMARY KEY REFERENCES reports(id),
		content_summary TEXT,
		category TEXT,
		potential_score INTEGER,
		has_opportunity BOOLEAN,
		summary TEXT,
		key_points TEXT,
		action_steps TEXT,
		opportunity_type TEXT,
		mentioned_entities TEXT,
		risk_level TEXT,
		confidence_level TEXT,
		estimated_timeline TEXT,
		additional_context TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	CREATE INDEX IF NOT EXISTS idx_posts_report_id ON posts(report_id);
	CREATE INDEX IF NOT EXISTS idx_analyses_score ON analyses(potential_score);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveReport persists one batch result with its per-post detail and returns
// the generated report id.
func (s *Store) SaveReport(result types.BatchResult, posts []types.ExtractedPost) (string, error) {
	id := uuid.NewString()
	now := time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO reports (id, corpus, success, total_posts, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, result.Corpus, result.Success, result.TotalPosts, result.Error, now)
	if err != nil {
		return "", err
	}

	for _, p := range posts {
		_, err = tx.Exec(`
			INSERT INTO posts (report_id, url, author_name, author_handle, text, timestamp, scraped_at, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, p.URL, p.Author.DisplayName, p.Author.Username, p.Text, p.Timestamp, p.ScrapedAt, p.Error)
		if err != nil {
			return "", err
		}
	}

	keyPoints, _ := json.Marshal(result.Analysis.KeyPoints)
	actionSteps, _ := json.Marshal(result.Analysis.ActionSteps)
	entities, _ := json.Marshal(result.Analysis.MentionedEntities)

	_, err = tx.Exec(`
		INSERT INTO analyses (report_id, content_summary, category, potential_score,
			has_opportunity, summary, key_points, action_steps, opportunity_type,
			mentioned_entities, risk_level, confidence_level, estimated_timeline, additional_context)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, result.Analysis.ContentSummary, result.Analysis.Category, result.Analysis.PotentialScore,
		result.Analysis.HasOpportunity, result.Analysis.Summary, string(keyPoints), string(actionSteps),
		result.Analysis.OpportunityType, string(entities), result.Analysis.RiskLevel,
		result.Analysis.ConfidenceLevel, result.Analysis.EstimatedTimeline, result.Analysis.AdditionalContext)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ReportSummary is one row of report history.
type ReportSummary struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	PotentialScore int       `json:"potential_score"`
	HasOpportunity bool      `json:"has_opportunity"`
	TotalPosts     int       `json:"total_posts"`
	Success        bool      `json:"success"`
	CreatedAt      time.Time `json:"created_at"`
}

// RecentReports returns the newest reports, most recent first.
func (s *Store) RecentReports(limit int) ([]ReportSummary, error) {
	rows, err := s.db.Query(`
		SELECT r.id, COALESCE(a.category, ''), COALESCE(a.potential_score, 0),
			COALESCE(a.has_opportunity, 0), r.total_posts, r.success, r.created_at
		FROM reports r
		LEFT JOIN analyses a ON r.id = a.report_id
		ORDER BY r.created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []ReportSummary
	for rows.Next() {
		var r ReportSummary
		if err := rows.Scan(&r.ID, &r.Category, &r.PotentialScore, &r.HasOpportunity,
			&r.TotalPosts, &r.Success, &r.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// ReportPosts returns the per-post detail for a report, in extraction order.
func (s *Store) ReportPosts(reportID string) ([]types.ExtractedPost, error) {
	rows, err := s.db.Query(`
		SELECT url, author_name, author_handle, text, timestamp, scraped_at, COALESCE(error, '')
		FROM posts
		WHERE report_id = ?
		ORDER BY id
	`, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []types.ExtractedPost
	for rows.Next() {
		var p types.ExtractedPost
		if err := rows.Scan(&p.URL, &p.Author.DisplayName, &p.Author.Username,
			&p.Text, &p.Timestamp, &p.ScrapedAt, &p.Error); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
