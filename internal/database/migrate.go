package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies the schema. Statements are idempotent so startup can run
// them unconditionally.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			password_hash TEXT,
			is_admin BOOLEAN NOT NULL DEFAULT false,
			login_enabled BOOLEAN NOT NULL DEFAULT true,
			is_active BOOLEAN NOT NULL DEFAULT true,
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS members (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			campus_id UUID,
			name TEXT NOT NULL,
			email TEXT,
			phone_number TEXT,
			address TEXT,
			birthdate DATE,
			gender TEXT,
			marital_status TEXT,
			joined_at DATE,
			notes TEXT,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS aid_schedules (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			campus_id UUID,
			title TEXT NOT NULL,
			aid_type TEXT NOT NULL,
			aid_amount NUMERIC(14,2) NOT NULL,
			frequency TEXT NOT NULL,
			day_of_week TEXT,
			day_of_month INT,
			month_of_year INT,
			start_date DATE NOT NULL,
			end_date DATE,
			next_occurrence DATE,
			is_active BOOLEAN NOT NULL DEFAULT true,
			ignored BOOLEAN NOT NULL DEFAULT false,
			notes TEXT,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS schedule_ignored_occurrences (
			schedule_id UUID NOT NULL REFERENCES aid_schedules(id) ON DELETE CASCADE,
			occurred_on DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (schedule_id, occurred_on)
		)`,

		`CREATE TABLE IF NOT EXISTS care_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			member_id UUID NOT NULL REFERENCES members(id) ON DELETE CASCADE,
			campus_id UUID,
			event_type TEXT NOT NULL,
			event_date DATE NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			grief_relationship TEXT,
			hospital_name TEXT,
			aid_type TEXT,
			aid_amount NUMERIC(14,2),
			source_schedule_id UUID REFERENCES aid_schedules(id) ON DELETE CASCADE,
			completed BOOLEAN NOT NULL DEFAULT false,
			ignored BOOLEAN NOT NULL DEFAULT false,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS grief_support_stages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			care_event_id UUID NOT NULL REFERENCES care_events(id) ON DELETE CASCADE,
			stage TEXT NOT NULL,
			scheduled_date DATE NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT false,
			ignored BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS accident_followup_stages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			care_event_id UUID NOT NULL REFERENCES care_events(id) ON DELETE CASCADE,
			stage TEXT NOT NULL,
			scheduled_date DATE NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT false,
			ignored BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_care_events_member ON care_events(member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_care_events_type_date ON care_events(event_type, event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_care_events_source_schedule ON care_events(source_schedule_id)`,
		`CREATE INDEX IF NOT EXISTS idx_aid_schedules_member ON aid_schedules(member_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
