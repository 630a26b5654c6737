// Package quiz serves the scripture quiz catalog.
package quiz

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// List returns every quiz. Question payloads are included; the catalog is
// small and the client grades locally against correctAnswer.
func List(db *sql.DB) ([]models.Quiz, error) {
	rows, err := db.Query(`SELECT id, title, description, image, questions FROM quizzes ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}

// GetByID returns one quiz.
func GetByID(db *sql.DB, id string) (models.Quiz, error) {
	row := db.QueryRow(`SELECT id, title, description, image, questions FROM quizzes WHERE id = ?`, id)
	return scanQuiz(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row scanner) (models.Quiz, error) {
	var (
		q         models.Quiz
		questions string
	)
	if err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Image, &questions); err != nil {
		return models.Quiz{}, err
	}
	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return models.Quiz{}, fmt.Errorf("decode questions for quiz %s: %w", q.ID, err)
	}
	return q, nil
}
