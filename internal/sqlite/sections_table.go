package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

const sectionColumns = "id, project_id, name, file_path, content, created_at, updated_at"

// CreateSection inserts a section for a project and bumps the project's
// updated_at in the same transaction.
func (b *Backend) CreateSection(projectID int64, name, filePath, content string) (*types.Section, error) {
	if projectID <= 0 {
		return nil, types.ErrInvalidID
	}
	if name == "" {
		return nil, types.ErrInvalidName
	}

	var s *types.Section
	err := b.WithTx(func(tx *Backend) error {
		now, ts := tx.stamp()
		res, err := tx.q().Exec(
			"INSERT INTO sections (project_id, name, file_path, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			projectID, name, filePath, content, ts, ts,
		)
		if err != nil {
			return fmt.Errorf("inserting section %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading section id: %w", err)
		}
		if err := tx.touchProject(tx.q(), projectID, ts); err != nil {
			return err
		}
		s = &types.Section{
			ID:        id,
			ProjectID: projectID,
			Name:      name,
			FilePath:  filePath,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetSection retrieves a section by id.
func (b *Backend) GetSection(id int64) (*types.Section, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	row := b.q().QueryRow("SELECT "+sectionColumns+" FROM sections WHERE id = ?", id)
	s, err := hydrateSection(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting section %d: %w", id, err)
	}
	return s, nil
}

// GetSections returns a project's sections in creation order. A non-empty
// name restricts the result to sections with that name.
func (b *Backend) GetSections(projectID int64, name string) ([]*types.Section, error) {
	query := "SELECT " + sectionColumns + " FROM sections WHERE project_id = ?"
	args := []any{projectID}
	if name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}
	query += " ORDER BY id"

	rows, err := b.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching sections: %w", err)
	}
	defer rows.Close()

	var sections []*types.Section
	for rows.Next() {
		s, err := hydrateSection(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating section: %w", err)
		}
		sections = append(sections, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return sections, nil
}

// UpdateSectionContent replaces a section's cached content and bumps its
// project's updated_at.
func (b *Backend) UpdateSectionContent(id int64, content string) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	return b.WithTx(func(tx *Backend) error {
		var projectID int64
		if err := tx.q().QueryRow("SELECT project_id FROM sections WHERE id = ?", id).Scan(&projectID); err != nil {
			if isNoRows(err) {
				return types.ErrNotFound
			}
			return fmt.Errorf("getting section %d: %w", id, err)
		}

		_, ts := tx.stamp()
		if _, err := tx.q().Exec(
			"UPDATE sections SET content = ?, updated_at = ? WHERE id = ?",
			content, ts, id,
		); err != nil {
			return fmt.Errorf("updating section %d: %w", id, err)
		}
		return tx.touchProject(tx.q(), projectID, ts)
	})
}

// hydrateSection converts a single SQLite row into a *types.Section.
func hydrateSection(row scanner) (*types.Section, error) {
	var s types.Section
	var createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &s.FilePath, &s.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
