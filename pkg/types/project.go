package types

import "time"

// Project is one scaffolded documentation workspace tracked in the store.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`     // Absolute path of the project directory.
	Template  string    `json:"template"` // Template name the project was seeded from.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section is one tracked documentation file belonging to a Project.
type Section struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`      // Template filename stem, e.g. "features".
	FilePath  string    `json:"file_path"` // Relative to the project root.
	Content   string    `json:"content"`   // Bytes on disk at the last successful write.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeaturesSection is the name of the section holding the feature checklist.
const FeaturesSection = "features"

// Feature is one checklist entry belonging to a Project.
type Feature struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SameEntry reports whether two features carry the same checklist tuple
// (name, description, completed, category), ignoring identity and timestamps.
func (f Feature) SameEntry(other Feature) bool {
	return f.Name == other.Name &&
		f.Description == other.Description &&
		f.Completed == other.Completed &&
		f.Category == other.Category
}
