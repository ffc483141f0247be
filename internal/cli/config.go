package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/vibedocs/internal/paths"
	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "VIBEDOCS"

	cfgKeyDBPath          = "db_path"
	cfgKeyDefaultTemplate = "default_template"
	cfgKeyProjectsDir     = "projects_dir"
	cfgKeyTemplatesDir    = "templates_dir"
	cfgKeyLogLevel        = "log_level"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# vibe configuration

# Template used by "vibe init" when --template is not given.
default_template: default

# Directory new projects are created under (default: current directory).
# projects_dir:

# Database file (overridable by --db or VIBEDOCS_DB).
# db_path:

# Directory holding custom templates, one subdirectory per template name.
# templates_dir:

# Log level: debug, info, warn, error.
log_level: warn
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. Keys may also be set through
// VIBEDOCS_<KEY> environment variables.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDefaultTemplate, types.DefaultTemplateName)
	v.SetDefault(cfgKeyLogLevel, types.LogLevelWarn)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// config resolves the settings for this invocation from flags, config.yaml,
// and the environment.
func (a *app) config() (types.Config, error) {
	dbPath, err := paths.ResolveDBPath(a.dbPath, a.cfg.GetString(cfgKeyDBPath))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve database path: %w", err)
	}
	projectsDir, err := paths.ResolveProjectsDir(a.cfg.GetString(cfgKeyProjectsDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve projects dir: %w", err)
	}

	level := a.logLevel
	if level == "" {
		level = a.cfg.GetString(cfgKeyLogLevel)
	}

	cfg := types.Config{
		DBPath:          dbPath,
		ProjectsDir:     projectsDir,
		TemplatesDir:    a.cfg.GetString(cfgKeyTemplatesDir),
		DefaultTemplate: a.cfg.GetString(cfgKeyDefaultTemplate),
		LogLevel:        level,
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
