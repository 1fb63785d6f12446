package repository

import (
	"database/sql"

	"github.com/lukeringworm/dynameter-deploy/internal/model"
)

// PostgresStore persists categories and milestones in Postgres. The core
// pipeline's cache and ledger stay in memory regardless of the store.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables on first run and seeds the default
// categories and milestones when the category table is empty.
func (s *PostgresStore) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			key VARCHAR(50) NOT NULL UNIQUE,
			name TEXT NOT NULL,
			score REAL NOT NULL DEFAULT 0,
			change REAL NOT NULL DEFAULT 0,
			icon TEXT NOT NULL,
			color TEXT NOT NULL,
			description TEXT NOT NULL,
			current_status TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS milestones (
			id SERIAL PRIMARY KEY,
			milestone_id TEXT NOT NULL UNIQUE,
			category_key VARCHAR(50) NOT NULL,
			title TEXT NOT NULL,
			target TEXT NOT NULL,
			current TEXT NOT NULL DEFAULT '',
			target_date TEXT NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'on-track',
			description TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE
		);
	`)
	if err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range defaultCategories() {
		_, err := s.db.Exec(`
			INSERT INTO categories(key, name, score, change, icon, color, description, current_status)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (key) DO NOTHING
		`, c.Key, c.Name, c.Score, c.Change, c.Icon, c.Color, c.Description, c.CurrentStatus)
		if err != nil {
			return err
		}
	}
	for _, m := range defaultMilestones() {
		_, err := s.db.Exec(`
			INSERT INTO milestones(milestone_id, category_key, title, target, current, target_date, status, description, completed)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (milestone_id) DO NOTHING
		`, m.ID, m.CategoryKey, m.Title, m.Target, m.Current, m.TargetDate, m.Status, m.Description, m.Completed)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) GetCategories() ([]model.CategoryInfo, error) {
	rows, err := s.db.Query(`
		SELECT key, name, score, change, icon, color, description, current_status
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.CategoryInfo
	for rows.Next() {
		var c model.CategoryInfo
		err := rows.Scan(&c.Key, &c.Name, &c.Score, &c.Change, &c.Icon, &c.Color, &c.Description, &c.CurrentStatus)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (s *PostgresStore) GetCategory(key model.Category) (*model.CategoryInfo, error) {
	var c model.CategoryInfo
	err := s.db.QueryRow(`
		SELECT key, name, score, change, icon, color, description, current_status
		FROM categories
		WHERE key = $1
	`, key).Scan(&c.Key, &c.Name, &c.Score, &c.Change, &c.Icon, &c.Color, &c.Description, &c.CurrentStatus)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *PostgresStore) GetMilestones(key model.Category) ([]model.Milestone, error) {
	rows, err := s.db.Query(`
		SELECT milestone_id, category_key, title, target, current, target_date, status, description, completed
		FROM milestones
		WHERE category_key = $1
		ORDER BY milestone_id
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMilestones(rows)
}

func (s *PostgresStore) GetAllMilestones() (map[model.Category][]model.Milestone, error) {
	rows, err := s.db.Query(`
		SELECT milestone_id, category_key, title, target, current, target_date, status, description, completed
		FROM milestones
		ORDER BY milestone_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones, err := scanMilestones(rows)
	if err != nil {
		return nil, err
	}

	out := make(map[model.Category][]model.Milestone)
	for _, m := range milestones {
		out[m.CategoryKey] = append(out[m.CategoryKey], m)
	}
	return out, nil
}

// ReplaceMilestones swaps the full milestone set in one transaction.
func (s *PostgresStore) ReplaceMilestones(milestones map[model.Category][]model.Milestone) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM milestones`); err != nil {
		return err
	}

	for _, list := range milestones {
		for _, m := range list {
			_, err := tx.Exec(`
				INSERT INTO milestones(milestone_id, category_key, title, target, current, target_date, status, description, completed)
				VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, m.ID, m.CategoryKey, m.Title, m.Target, m.Current, m.TargetDate, m.Status, m.Description, m.Completed)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func scanMilestones(rows *sql.Rows) ([]model.Milestone, error) {
	var milestones []model.Milestone
	for rows.Next() {
		var m model.Milestone
		err := rows.Scan(&m.ID, &m.CategoryKey, &m.Title, &m.Target, &m.Current, &m.TargetDate, &m.Status, &m.Description, &m.Completed)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return milestones, nil
}
