package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/vibedocs/internal/prompt"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

type env struct {
	configDir   string
	dbPath      string
	projectsDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		configDir:   filepath.Join(root, "config"),
		dbPath:      filepath.Join(root, "data", "vibedocs.db"),
		projectsDir: filepath.Join(root, "projects"),
	}
	t.Setenv("VIBEDOCS_PROJECTS_DIR", e.projectsDir)
	return e
}

// exec runs vibe with args, answering prompts from answers.
func (e *env) exec(t *testing.T, answers []string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		in:       strings.NewReader(""),
		out:      &out,
		errOut:   &errOut,
		prompter: prompt.NewScripted(answers...),
	}
	args = append([]string{"--config-dir", e.configDir, "--db", e.dbPath}, args...)
	code = run(a, args)
	return code, out.String(), errOut.String()
}

func blanks(n int) []string {
	return make([]string, n)
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.exec(t, nil, "version")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "vibe v")
	assert.Contains(t, out, modulePath)
}

func TestInitStatusValidate(t *testing.T) {
	e := newEnv(t)

	code, out, stderr := e.exec(t, blanks(8), "init", "demo")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, "initialized successfully")
	assert.FileExists(t, filepath.Join(e.configDir, configFileExt), "default config written")
	assert.FileExists(t, filepath.Join(e.projectsDir, "demo", "docs", "features.md"))

	code, out, stderr = e.exec(t, nil, "--json", "status")
	require.Equal(t, exitSuccess, code, stderr)
	var report statusReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "demo", report.Project.Name)
	assert.Len(t, report.Sections, 7)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 0, report.Completed)
	require.Len(t, report.Categories, 2)
	assert.Equal(t, "Core Features", report.Categories[0].Name)
	assert.Equal(t, []string{"demo"}, report.Projects)

	code, out, _ = e.exec(t, nil, "status")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Features: 0/5 completed")
	assert.Contains(t, out, "- [ ] Tests: Unit and integration coverage for core workflow")
	assert.NotContains(t, out, "Tracked projects")

	code, out, _ = e.exec(t, nil, "validate")
	assert.Equal(t, exitSuccess, code, out)
	assert.Contains(t, out, "no issues")

	overview := filepath.Join(e.projectsDir, "demo", "docs", "instructions", "overview.md")
	require.NoError(t, os.WriteFile(overview, []byte("# Changed by hand\n"), 0o644))

	code, out, stderr = e.exec(t, nil, "--json", "validate")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, out, `"kind": "drift"`)
	assert.Contains(t, stderr, "validation found issues")

	code, _, stderr = e.exec(t, blanks(8), "init", "other")
	require.Equal(t, exitSuccess, code, stderr)
	code, out, _ = e.exec(t, nil, "status", "--project", "demo")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, out, "Tracked projects:")
	assert.Contains(t, out, "other")
}

func TestInit_DuplicateAndUnknownTemplate(t *testing.T) {
	e := newEnv(t)

	code, _, stderr := e.exec(t, nil, "init", "demo", "--template", "bogus")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "template not found")
	assert.Contains(t, stderr, "api, default")
	assert.NoFileExists(t, e.dbPath)
	assert.NoDirExists(t, filepath.Join(e.projectsDir, "demo"))

	code, _, stderr = e.exec(t, blanks(8), "init", "demo")
	require.Equal(t, exitSuccess, code, stderr)

	code, _, stderr = e.exec(t, nil, "init", "demo")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "directory already exists")
}

func TestInit_ConfiguredDefaultTemplate(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte("default_template: api\n"), 0o644))

	code, _, stderr := e.exec(t, blanks(9), "init", "svc")
	require.Equal(t, exitSuccess, code, stderr)
	assert.FileExists(t, filepath.Join(e.projectsDir, "svc", "docs", "instructions", "endpoints.md"))
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)

	code, _, stderr := e.exec(t, nil, "update")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "no projects found")
	assert.Contains(t, stderr, "store does not exist")
	assert.NoFileExists(t, e.dbPath)

	code, _, stderr = e.exec(t, blanks(8), "init", "demo")
	require.Equal(t, exitSuccess, code, stderr)

	code, _, stderr = e.exec(t, nil, "update", "--section", "missing")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "section not found")

	code, out, stderr := e.exec(t, []string{"y", "# New setup\n"}, "--json", "update", "-s", "setup")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, out, `"state": "done"`)

	data, err := os.ReadFile(filepath.Join(e.projectsDir, "demo", "docs", "instructions", "setup.md"))
	require.NoError(t, err)
	assert.Equal(t, "# New setup\n", string(data))

	code, _, _ = e.exec(t, nil, "validate")
	assert.Equal(t, exitSuccess, code, "file and store stay in sync")
}

func TestTemplates(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.exec(t, nil, "--json", "templates")
	require.Equal(t, exitSuccess, code)
	var infos []templateInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "api", infos[0].Name)
	assert.Equal(t, "default", infos[1].Name)
	assert.Contains(t, infos[1].Files, "docs/features.md")
	assert.Contains(t, infos[1].Prompts, "project_overview")
}

func TestLogLevelFlag(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.exec(t, nil, "--log-level", "loud", "templates")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "log level")
}

func TestArgumentErrors(t *testing.T) {
	e := newEnv(t)
	code, _, _ := e.exec(t, nil, "init")
	assert.Equal(t, exitUserError, code)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain", errors.New("bad flag"), exitUserError},
		{"user sentinel", classify(types.ErrNoProject), exitUserError},
		{"wrapped sentinel", classify(errors.Join(errors.New("ctx"), types.ErrProjectExists)), exitUserError},
		{"system", classify(errors.New("disk full")), exitSysError},
		{"explicit", sysError(types.ErrNoProject), exitSysError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
