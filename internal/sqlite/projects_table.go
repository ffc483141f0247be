package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

const projectColumns = "id, name, path, template, created_at, updated_at"

// CreateProject inserts a project row. The name must be unique.
func (b *Backend) CreateProject(name, path, template string) (*types.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, types.ErrInvalidName
	}

	now, ts := b.stamp()
	res, err := b.q().Exec(
		"INSERT INTO projects (name, path, template, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		name, path, template, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading project id: %w", err)
	}

	b.logger.Debug("created project", "id", id, "name", name)
	return &types.Project{
		ID:        id,
		Name:      name,
		Path:      path,
		Template:  template,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetProject retrieves a project by id.
func (b *Backend) GetProject(id int64) (*types.Project, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	row := b.q().QueryRow("SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	p, err := hydrateProject(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}
	return p, nil
}

// GetProjectByName retrieves a project by its unique name.
func (b *Backend) GetProjectByName(name string) (*types.Project, error) {
	row := b.q().QueryRow("SELECT "+projectColumns+" FROM projects WHERE name = ?", name)
	p, err := hydrateProject(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting project %q: %w", name, err)
	}
	return p, nil
}

// MostRecentProject returns the project with the latest updated_at. Returns
// types.ErrNotFound when the store holds no projects.
func (b *Backend) MostRecentProject() (*types.Project, error) {
	row := b.q().QueryRow(
		"SELECT " + projectColumns + " FROM projects ORDER BY updated_at DESC, id DESC LIMIT 1",
	)
	p, err := hydrateProject(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting most recent project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects, most recently updated first.
func (b *Backend) ListProjects() ([]*types.Project, error) {
	rows, err := b.q().Query(
		"SELECT " + projectColumns + " FROM projects ORDER BY updated_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*types.Project
	for rows.Next() {
		p, err := hydrateProject(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// TouchProject bumps the project's updated_at.
func (b *Backend) TouchProject(id int64) error {
	_, ts := b.stamp()
	return b.touchProject(b.q(), id, ts)
}

func (b *Backend) touchProject(q querier, id int64, ts string) error {
	res, err := q.Exec("UPDATE projects SET updated_at = ? WHERE id = ?", ts, id)
	if err != nil {
		return fmt.Errorf("touching project %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touching project %d: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// hydrateProject converts a single SQLite row into a *types.Project.
func hydrateProject(row scanner) (*types.Project, error) {
	var p types.Project
	var createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &p.Path, &p.Template, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
