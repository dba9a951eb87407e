package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Project is a billing target for time entries.
type Project struct {
	ID                string
	Name              string
	Client            string
	Color             string
	DefaultHourlyRate *float64
	Active            bool
	CreatedAt         time.Time
}

const projectColumns = `id, name, client, color, default_hourly_rate, active, created_at`

func (db *DB) InsertProject(p *Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Color == "" {
		p.Color = "#6b7280"
	}
	p.CreatedAt = time.Now().UTC()

	_, err := db.Exec(
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Client, p.Color, p.DefaultHourlyRate, p.Active,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (db *DB) UpdateProject(p *Project) error {
	res, err := db.Exec(
		`UPDATE projects SET name = ?, client = ?, color = ?, default_hourly_rate = ?, active = ? WHERE id = ?`,
		p.Name, p.Client, p.Color, p.DefaultHourlyRate, p.Active, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("project %s not found", p.ID)
	}
	return nil
}

func (db *DB) GetProject(id string) (*Project, error) {
	projects, err := db.queryProjects(
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// FindProjectByName matches a project by exact name, for CLI flags that
// take a name instead of an id.
func (db *DB) FindProjectByName(name string) (*Project, error) {
	projects, err := db.queryProjects(
		`SELECT `+projectColumns+` FROM projects WHERE name = ?`, name,
	)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, nil
	}
	return &projects[0], nil
}

// ListProjects returns projects ordered by name. Archived projects are
// included only when includeArchived is set.
func (db *DB) ListProjects(includeArchived bool) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	if !includeArchived {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name ASC`
	return db.queryProjects(query)
}

// ProjectMap returns all projects keyed by id, the lookup shape the
// summary engine takes.
func (db *DB) ProjectMap() (map[string]Project, error) {
	projects, err := db.queryProjects(`SELECT ` + projectColumns + ` FROM projects`)
	if err != nil {
		return nil, err
	}
	m := make(map[string]Project, len(projects))
	for _, p := range projects {
		m[p.ID] = p
	}
	return m, nil
}

func (db *DB) queryProjects(query string, args ...any) ([]Project, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		var client sql.NullString
		var rate sql.NullFloat64
		var createdStr string

		if err := rows.Scan(&p.ID, &p.Name, &client, &p.Color, &rate, &p.Active, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.Client = client.String
		if rate.Valid {
			r := rate.Float64
			p.DefaultHourlyRate = &r
		}
		if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			p.CreatedAt = t
		}

		projects = append(projects, p)
	}
	return projects, rows.Err()
}
