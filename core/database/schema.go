package database

import (
	"context"
	"fmt"
)

// CreateSchema creates every table the service needs. Safe to call on each
// start since all statements use IF NOT EXISTS.
func (d Database) CreateSchema(ctx context.Context) error {
	if _, err := d.sqlx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

-- Matches pushed by the external matching service
CREATE TABLE IF NOT EXISTS matches (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL UNIQUE,
    counterpart_id UUID NOT NULL,
    counterpart_first_name TEXT NOT NULL,
    counterpart_last_name TEXT NOT NULL,
    counterpart_email TEXT NOT NULL,
    counterpart_gender TEXT NOT NULL DEFAULT 'DIGER',
    counterpart_preferences TEXT[] NOT NULL DEFAULT '{}',
    favorite_color TEXT NOT NULL DEFAULT '',
    hobbies TEXT NOT NULL DEFAULT '',
    counterpart_proposed_times TEXT[] NOT NULL DEFAULT '{}',
    match_date DATE NOT NULL,
    delivery_date DATE NOT NULL,
    revealed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_matches_counterpart_id ON matches(counterpart_id);

-- Finalized proposal sets
CREATE TABLE IF NOT EXISTS proposal_submissions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    match_id UUID REFERENCES matches(id) ON DELETE SET NULL,
    fingerprint TEXT NOT NULL,
    confirmation_code TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_proposal_submissions_user_updated ON proposal_submissions(user_id, updated_at DESC);

CREATE TABLE IF NOT EXISTS proposal_slots (
    submission_id UUID NOT NULL REFERENCES proposal_submissions(id) ON DELETE CASCADE,
    position SMALLINT NOT NULL CHECK (position BETWEEN 0 AND 2),
    slot_date DATE NOT NULL,
    slot_hour TEXT NOT NULL,
    PRIMARY KEY (submission_id, position)
);

-- Notifications
CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL,
    title TEXT NOT NULL,
    message TEXT NOT NULL,
    type TEXT NOT NULL,
    data JSONB NOT NULL DEFAULT '{}',
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id, created_at DESC);
`
