package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

const featureColumns = "id, project_id, name, description, completed, category, created_at, updated_at"

// CreateFeature inserts f for f.ProjectID, filling in its ID and timestamps,
// and bumps the project's updated_at. An empty name is stored as given, since
// a checklist line like "- [ ] : text" parses to one.
func (b *Backend) CreateFeature(f *types.Feature) error {
	if f.ProjectID <= 0 {
		return types.ErrInvalidID
	}

	return b.WithTx(func(tx *Backend) error {
		now, ts := tx.stamp()
		res, err := tx.q().Exec(
			"INSERT INTO features (project_id, name, description, completed, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			f.ProjectID, f.Name, f.Description, f.Completed, f.Category, ts, ts,
		)
		if err != nil {
			return fmt.Errorf("inserting feature %q: %w", f.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading feature id: %w", err)
		}
		if err := tx.touchProject(tx.q(), f.ProjectID, ts); err != nil {
			return err
		}
		f.ID = id
		f.CreatedAt = now
		f.UpdatedAt = now
		return nil
	})
}

// ListFeatures returns a project's features in insertion order.
func (b *Backend) ListFeatures(projectID int64) ([]types.Feature, error) {
	rows, err := b.q().Query(
		"SELECT "+featureColumns+" FROM features WHERE project_id = ? ORDER BY id",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching features: %w", err)
	}
	defer rows.Close()

	var features []types.Feature
	for rows.Next() {
		f, err := hydrateFeature(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating feature: %w", err)
		}
		features = append(features, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating features: %w", err)
	}
	return features, nil
}

// UpdateFeatureCompleted sets a feature's completed flag and bumps its
// project's updated_at.
func (b *Backend) UpdateFeatureCompleted(id int64, completed bool) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	return b.WithTx(func(tx *Backend) error {
		var projectID int64
		if err := tx.q().QueryRow("SELECT project_id FROM features WHERE id = ?", id).Scan(&projectID); err != nil {
			if isNoRows(err) {
				return types.ErrNotFound
			}
			return fmt.Errorf("getting feature %d: %w", id, err)
		}

		_, ts := tx.stamp()
		if _, err := tx.q().Exec(
			"UPDATE features SET completed = ?, updated_at = ? WHERE id = ?",
			completed, ts, id,
		); err != nil {
			return fmt.Errorf("updating feature %d: %w", id, err)
		}
		return tx.touchProject(tx.q(), projectID, ts)
	})
}

// hydrateFeature converts a single SQLite row into a *types.Feature.
func hydrateFeature(row scanner) (*types.Feature, error) {
	var f types.Feature
	var createdAt, updatedAt string
	if err := row.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Description, &f.Completed, &f.Category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if f.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &f, nil
}
