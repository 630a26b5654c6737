// Package plans covers the reading-plan catalog, each user's saved plan
// copies and the per-plan progression state machine.
package plans

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/wolfsidevstudios/bibleaiaiaiai/pkg/models"
)

// ListCatalog returns the built-in plan catalog.
func ListCatalog(db *sql.DB) ([]models.Plan, error) {
	rows, err := db.Query(`SELECT id, title, duration, image, description, content FROM plans ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// GetCatalogPlan returns one built-in plan by id.
func GetCatalogPlan(db *sql.DB, id string) (models.Plan, error) {
	row := db.QueryRow(`SELECT id, title, duration, image, description, content FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (models.Plan, error) {
	var (
		p       models.Plan
		content string
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Duration, &p.Image, &p.Description, &content); err != nil {
		return models.Plan{}, err
	}
	if err := json.Unmarshal([]byte(content), &p.Content); err != nil {
		return models.Plan{}, fmt.Errorf("decode content for plan %s: %w", p.ID, err)
	}
	return p, nil
}
