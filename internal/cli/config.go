// Config loading for the chests CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/chests/internal/containers"
	"github.com/mesh-intelligence/chests/internal/logging"
	"github.com/mesh-intelligence/chests/internal/paths"
	"github.com/mesh-intelligence/chests/internal/world"
	"github.com/mesh-intelligence/chests/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataDir  = "data_dir"
	cfgKeyActor    = "actor"
	cfgKeyLogLevel = "log_level"
	cfgKeyCatalogs = "catalogs"
)

// configFile is the structure of the default config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	Actor    string `yaml:"actor"`
	LogLevel string `yaml:"log_level"`
}

// configHeader documents the optional keys at the top of a new config.yaml.
const configHeader = `# chests configuration
#
# data_dir:  save data directory (overridable by --data-dir)
# actor:     lock holder used when opening containers
# log_level: debug, info, warn or error
# catalogs:  categories each shop context deals in, by name or numeric
#            code; omitted contexts use the built-in lists, e.g.
#   catalogs:
#     Dresser: [clothing, hat, ring, boots, trinket]

`

// settings is the resolved configuration of one invocation.
type settings struct {
	ConfigDir string
	DataDir   string
	Backend   string
	Actor     string
	LogLevel  string
	Catalogs  map[string][]types.Category
}

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyActor, containers.DefaultActor)
	v.SetDefault(cfgKeyLogLevel, logging.DefaultLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	_ = v.BindEnv(cfgKeyActor, "CHESTS_ACTOR")
	_ = v.BindEnv(cfgKeyLogLevel, "CHESTS_LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFileName)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	data, err := yaml.Marshal(&configFile{
		Backend:  types.BackendSQLite,
		Actor:    containers.DefaultActor,
		LogLevel: logging.DefaultLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// loadSettings resolves directories and reads config.yaml into a.settings.
// Flags win over the file.
func (a *app) loadSettings() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemErr("resolve config dir", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return systemErr("load config", err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return systemErr("resolve data dir", err)
	}
	catalogs, err := decodeCatalogs(v.Get(cfgKeyCatalogs))
	if err != nil {
		return fmt.Errorf("config %s: %w", cfgKeyCatalogs, err)
	}

	level := v.GetString(cfgKeyLogLevel)
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	a.settings = settings{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Backend:   v.GetString(cfgKeyBackend),
		Actor:     v.GetString(cfgKeyActor),
		LogLevel:  level,
		Catalogs:  catalogs,
	}
	return nil
}

// decodeCatalogs merges the configured catalog contexts over the built-in
// ones. Each context maps to a list of category names or numeric codes.
// Viper lowercases map keys, so built-in context names match ignoring case.
func decodeCatalogs(raw any) (map[string][]types.Category, error) {
	out := world.DefaultCatalogContexts()
	if raw == nil {
		return out, nil
	}
	canonical := make(map[string]string, len(out))
	for ctx := range out {
		canonical[strings.ToLower(ctx)] = ctx
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, err
	}
	contexts := make([]string, 0, len(m))
	for ctx := range m {
		contexts = append(contexts, ctx)
	}
	sort.Strings(contexts)
	for _, ctx := range contexts {
		values, err := cast.ToStringSliceE(m[ctx])
		if err != nil {
			return nil, fmt.Errorf("context %s: %w", ctx, err)
		}
		cats := make([]types.Category, 0, len(values))
		for _, s := range values {
			c, err := types.ParseCategory(s)
			if err != nil {
				return nil, fmt.Errorf("context %s: %w: %q", ctx, err, s)
			}
			cats = append(cats, c)
		}
		if name, ok := canonical[strings.ToLower(ctx)]; ok {
			ctx = name
		}
		out[ctx] = cats
	}
	return out, nil
}
