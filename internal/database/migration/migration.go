package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Asset slots are stored as paired nullable columns (<slot>_key, <slot>_url);
// both set or both null. Slugs carry the unique index that backstops the
// resolver's check-then-set race.
var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_ebooks",
		SQL: `CREATE TABLE IF NOT EXISTS ebooks (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT        NOT NULL,
  slug          TEXT        NOT NULL UNIQUE,
  description   TEXT        NOT NULL,
  price         NUMERIC     NOT NULL CHECK (price >= 0),
  pages         INT         NOT NULL CHECK (pages >= 1),
  category      TEXT        NOT NULL,
  thumbnail_key TEXT,
  thumbnail_url TEXT,
  pdf_key       TEXT,
  pdf_url       TEXT,
  payment_link  TEXT        NOT NULL DEFAULT '',
  publish_date  TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_nutrition_plans",
		SQL: `CREATE TABLE IF NOT EXISTS nutrition_plans (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT        NOT NULL CHECK (char_length(title) <= 100),
  slug          TEXT        NOT NULL UNIQUE,
  description   TEXT        NOT NULL,
  price         NUMERIC     NOT NULL CHECK (price >= 0),
  pages         INT         NOT NULL DEFAULT 0,
  category      TEXT        NOT NULL,
  thumbnail_key TEXT,
  thumbnail_url TEXT,
  pdf_key       TEXT,
  pdf_url       TEXT,
  payment_link  TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_programs",
		SQL: `CREATE TABLE IF NOT EXISTS programs (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT        NOT NULL,
  slug          TEXT        NOT NULL UNIQUE,
  description   TEXT        NOT NULL,
  price         NUMERIC     NOT NULL CHECK (price >= 0),
  duration      TEXT        NOT NULL,
  thumbnail_key TEXT,
  thumbnail_url TEXT,
  youtube_link  TEXT        NOT NULL DEFAULT '',
  publish_date  TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_program_series",
		SQL: `CREATE TABLE IF NOT EXISTS program_series (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  slug            TEXT        NOT NULL UNIQUE,
  description     TEXT        NOT NULL,
  cover_image_key TEXT,
  cover_image_url TEXT,
  category        TEXT        NOT NULL DEFAULT '',
  author          TEXT        NOT NULL DEFAULT '',
  publish_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_podcast_series",
		SQL: `CREATE TABLE IF NOT EXISTS podcast_series (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  slug            TEXT        NOT NULL UNIQUE,
  description     TEXT        NOT NULL,
  cover_image_key TEXT,
  cover_image_url TEXT,
  category        TEXT        NOT NULL DEFAULT '',
  publish_date    TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_podcast_episodes",
		SQL: `CREATE TABLE IF NOT EXISTS podcast_episodes (
  id             UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  series_id      UUID        NOT NULL REFERENCES podcast_series(id) ON DELETE CASCADE,
  title          TEXT        NOT NULL,
  slug           TEXT        NOT NULL UNIQUE,
  description    TEXT        NOT NULL,
  thumbnail_key  TEXT,
  thumbnail_url  TEXT,
  youtube_link   TEXT        NOT NULL,
  duration       TEXT        NOT NULL,
  episode_number INT         NOT NULL,
  publish_date   TIMESTAMPTZ NOT NULL DEFAULT now(),
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (series_id, episode_number)
);`,
	},
	{
		Name: "create_table_blog_posts",
		SQL: `CREATE TABLE IF NOT EXISTS blog_posts (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title            TEXT        NOT NULL,
  slug             TEXT        NOT NULL UNIQUE,
  content          TEXT        NOT NULL,
  excerpt          TEXT        NOT NULL CHECK (char_length(excerpt) <= 300),
  cover_image_key  TEXT,
  cover_image_url  TEXT,
  categories       JSONB       NOT NULL DEFAULT '[]',
  author_name      TEXT        NOT NULL DEFAULT '',
  author_bio       TEXT        NOT NULL DEFAULT '',
  is_featured      BOOLEAN     NOT NULL DEFAULT false,
  status           TEXT        NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
  meta_title       TEXT        NOT NULL DEFAULT '',
  meta_description TEXT        NOT NULL DEFAULT '',
  reading_time     TEXT        NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_appointments",
		SQL: `CREATE TABLE IF NOT EXISTS appointments (
  id                UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name              TEXT        NOT NULL,
  email             TEXT        NOT NULL,
  phone             TEXT        NOT NULL,
  age               INT         NOT NULL,
  gender            TEXT        NOT NULL CHECK (gender IN ('Male', 'Female', 'Other')),
  city              TEXT        NOT NULL,
  consultation_mode TEXT        NOT NULL CHECK (consultation_mode IN ('Online', 'Offline (In-Clinic)')),
  message           TEXT        NOT NULL,
  status            TEXT        NOT NULL DEFAULT 'New' CHECK (status IN ('New', 'Contacted', 'Completed', 'Cancelled')),
  created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_settings",
		SQL: `CREATE TABLE IF NOT EXISTS settings (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  key        TEXT        NOT NULL UNIQUE,
  value      TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_payment_orders",
		SQL: `CREATE TABLE IF NOT EXISTS payment_orders (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  order_id         TEXT        NOT NULL UNIQUE,
  gateway_order_id TEXT        NOT NULL DEFAULT '',
  item_type        TEXT        NOT NULL CHECK (item_type IN ('ebook', 'nutritionPlan')),
  item_id          UUID        NOT NULL,
  amount           NUMERIC     NOT NULL CHECK (amount > 0),
  currency         TEXT        NOT NULL DEFAULT 'INR',
  customer_id      TEXT        NOT NULL,
  customer_name    TEXT        NOT NULL DEFAULT '',
  customer_email   TEXT        NOT NULL,
  customer_phone   TEXT        NOT NULL,
  status           TEXT        NOT NULL DEFAULT 'created' CHECK (status IN ('created', 'paid', 'failed', 'cancelled')),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_blog_posts_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_blog_posts_status ON blog_posts (status);`,
	},
	{
		Name: "create_index_podcast_episodes_series",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_podcast_episodes_series ON podcast_episodes (series_id);`,
	},
	{
		Name: "create_index_payment_orders_item",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_payment_orders_item ON payment_orders (item_type, item_id);`,
	},
}

// EnsureMigrated checks for the sentinel 'ebooks' table and runs the full
// schema migration when it is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.ebooks') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
