package sqlite

// Schema DDL for all tables. Statements are idempotent so Attach can run them
// against an existing database.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    path TEXT NOT NULL,
    template TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSections = `CREATE TABLE IF NOT EXISTS sections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    file_path TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);`

	createFeatures = `CREATE TABLE IF NOT EXISTS features (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    category TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);`
)

// Index DDL for the lookups the store performs.
const (
	idxProjectsUpdated = `CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at);`
	idxSectionsProject = `CREATE INDEX IF NOT EXISTS idx_sections_project_name ON sections(project_id, name);`
	idxFeaturesProject = `CREATE INDEX IF NOT EXISTS idx_features_project ON features(project_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createProjects,
	createSections,
	createFeatures,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxProjectsUpdated,
	idxSectionsProject,
	idxFeaturesProject,
}
