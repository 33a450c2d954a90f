// Copyright 2025 FeedbackFlow
// SPDX-License-Identifier: Apache-2.0

/*
Package postgres provides the database connector. Feedback records are
written as rows to a single table; the table owns persistence format, the
core owns nothing durable.

Expected schema:

	CREATE TABLE feedback (
	    id               BIGSERIAL PRIMARY KEY,
	    page             TEXT NOT NULL,
	    category         TEXT NOT NULL,
	    comment          TEXT NOT NULL,
	    submitted_at     TEXT NOT NULL,
	    user_agent       TEXT,
	    highlighted_text TEXT,
	    section_id       TEXT,
	    suggested_tag    TEXT,
	    user_email       TEXT,
	    user_id          TEXT,
	    user_name        TEXT,
	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	);

The connector takes an injected *sql.DB (the process owns pooling and
shutdown) or opens one from a DSN via Open. It implements the optional
AnalyticsProvider capability with per-category counts.
*/
package postgres
