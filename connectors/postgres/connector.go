// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"feedbackflow/platform/connectors/base"
	"feedbackflow/platform/feedback"
)

// DefaultTable is the table feedback rows are written to.
const DefaultTable = "feedback"

// PostgresConnector implements base.Connector on top of a PostgreSQL table.
// The database handle is injected so the surrounding process owns pooling
// and shutdown.
type PostgresConnector struct {
	name   string
	db     *sql.DB
	table  string
	logger *log.Logger
}

// New creates a postgres connector over an injected database handle.
// A nil handle is valid: the connector simply reports itself unavailable.
func New(name string, db *sql.DB, table string) *PostgresConnector {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresConnector{
		name:   name,
		db:     db,
		table:  table,
		logger: log.New(os.Stdout, "[FEEDBACK_POSTGRES] ", log.LstdFlags),
	}
}

// Open creates a connector by opening a connection pool for dsn. The
// connection is not verified here; Detect and HealthCheck cover that.
func Open(name, dsn, table string) (*PostgresConnector, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, base.NewConnectorError(name, "Open", "failed to open connection", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return New(name, db, table), nil
}

// Close releases the underlying connection pool.
func (c *PostgresConnector) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Detect implements base.Connector: available when a handle was injected.
func (c *PostgresConnector) Detect(ctx context.Context) bool {
	return c.db != nil
}

// HealthCheck implements base.Connector with a ping plus pool statistics.
func (c *PostgresConnector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	if c.db == nil {
		return &base.HealthStatus{
			Healthy:   false,
			Timestamp: time.Now(),
			Error:     "database not configured",
		}, nil
	}

	start := time.Now()
	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return &base.HealthStatus{
			Healthy:   false,
			Latency:   latency,
			Timestamp: time.Now(),
			Error:     err.Error(),
		}, nil
	}

	stats := c.db.Stats()
	return &base.HealthStatus{
		Healthy:   true,
		Latency:   latency,
		Timestamp: time.Now(),
		Details: map[string]string{
			"open_connections": fmt.Sprintf("%d", stats.OpenConnections),
			"in_use":           fmt.Sprintf("%d", stats.InUse),
			"idle":             fmt.Sprintf("%d", stats.Idle),
		},
	}, nil
}

// Store implements base.Connector with a single parameterized insert.
func (c *PostgresConnector) Store(ctx context.Context, rec *feedback.Record) (*base.StorageResult, error) {
	if c.db == nil {
		return base.FailureMessage(c.name+".Store: database not configured", false), nil
	}

	stmt := fmt.Sprintf(`INSERT INTO %s
		(page, category, comment, submitted_at, user_agent, highlighted_text, section_id, suggested_tag, user_email, user_id, user_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`, c.table)

	var id int64
	err := c.db.QueryRowContext(ctx, stmt,
		rec.Page,
		string(rec.Category),
		rec.Comment,
		rec.Timestamp,
		nullable(rec.UserAgent),
		nullable(rec.HighlightedText),
		nullable(rec.SectionID),
		nullable(rec.SuggestedTag),
		nullable(rec.UserEmail),
		nullable(rec.UserID),
		nullable(rec.UserName),
	).Scan(&id)
	if err != nil {
		return base.Failure(base.NewConnectorError(c.name, "Store", "insert failed", err)), nil
	}

	c.logger.Printf("Stored feedback row %d for page %s", id, rec.Page)
	res := base.Stored(fmt.Sprintf("%d", id))
	res.Metadata = map[string]interface{}{"table": c.table}
	return res, nil
}

// Analytics implements base.AnalyticsProvider with per-category counts.
func (c *PostgresConnector) Analytics(ctx context.Context) (*base.AnalyticsSnapshot, error) {
	if c.db == nil {
		return nil, base.NewConnectorError(c.name, "Analytics", "database not configured", nil)
	}

	stmt := fmt.Sprintf("SELECT category, COUNT(*) FROM %s GROUP BY category", c.table)
	rows, err := c.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, base.NewConnectorError(c.name, "Analytics", "aggregate query failed", err)
	}
	defer func() { _ = rows.Close() }()

	snapshot := &base.AnalyticsSnapshot{
		Connector:  c.name,
		ByCategory: make(map[string]int64),
	}
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, base.NewConnectorError(c.name, "Analytics", "failed to scan row", err)
		}
		snapshot.ByCategory[category] = count
		snapshot.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, base.NewConnectorError(c.name, "Analytics", "error during row iteration", err)
	}
	return snapshot, nil
}

// Name returns the connector instance name.
func (c *PostgresConnector) Name() string { return c.name }

// Type returns the connector type.
func (c *PostgresConnector) Type() string { return "postgres" }

// nullable maps empty strings to SQL NULL for the optional columns.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
