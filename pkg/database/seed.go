package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// LoadPlansFromJSON reads the built-in plan catalog from a seed file.
func LoadPlansFromJSON(jsonPath string) ([]models.Plan, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read plans json: %w", err)
	}

	var list []models.Plan
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("unmarshal plans json: %w", err)
	}

	return list, nil
}

// LoadQuizzesFromJSON reads the quiz catalog from a seed file.
func LoadQuizzesFromJSON(jsonPath string) ([]models.Quiz, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read quizzes json: %w", err)
	}

	var list []models.Quiz
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("unmarshal quizzes json: %w", err)
	}

	return list, nil
}

// SeedPlans inserts plans that are not already present. Existing rows are
// left untouched so a user-visible plan never changes under them.
func SeedPlans(db *sql.DB, plans []models.Plan) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO plans (id, title, duration, image, description, content)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert plan: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range plans {
		contentJSON, err := json.Marshal(p.Content)
		if err != nil {
			return 0, fmt.Errorf("marshal content for %s: %w", p.ID, err)
		}

		res, err := stmt.Exec(p.ID, p.Title, p.Duration, p.Image, p.Description, string(contentJSON))
		if err != nil {
			return 0, fmt.Errorf("insert plan %s: %w", p.ID, err)
		}

		aff, _ := res.RowsAffected()
		if aff > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}

// SeedQuizzes inserts quizzes that are not already present.
func SeedQuizzes(db *sql.DB, quizzes []models.Quiz) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO quizzes (id, title, description, image, questions)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert quiz: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, q := range quizzes {
		questionsJSON, err := json.Marshal(q.Questions)
		if err != nil {
			return 0, fmt.Errorf("marshal questions for %s: %w", q.ID, err)
		}

		res, err := stmt.Exec(q.ID, q.Title, q.Description, q.Image, string(questionsJSON))
		if err != nil {
			return 0, fmt.Errorf("insert quiz %s: %w", q.ID, err)
		}

		aff, _ := res.RowsAffected()
		if aff > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}
