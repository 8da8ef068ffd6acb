package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/hgraph/internal/codec"
	"github.com/mesh-intelligence/hgraph/internal/paths"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "HGRAPH"

	cfgKeySchema       = "schema"
	cfgKeyOrphanPolicy = "orphan_policy"
	cfgKeyFormat       = "format"
	cfgKeyLogLevel     = "log_level"

	// cfgKeyConfigDir is set at load time, never read from the file.
	cfgKeyConfigDir = "config_dir"

	defaultLogLevel = "warn"
)

// defaultConfigYAML is the content written to config.yaml by init.
const defaultConfigYAML = `# hgraph configuration

# Schema document with node, edge and hyperedge declarations.
# A relative path is taken relative to this directory.
schema: schema.yaml

# What happens to edges and hyperedges when a node they reference is deleted:
# tolerate, reject or cascade.
orphan_policy: tolerate

# Default record format for files without a recognized extension: jsonl or msgpack.
format: jsonl

# Log level: debug, info, warn or error.
log_level: warn
`

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply. Environment variables HGRAPH_<KEY> override
// file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyOrphanPolicy, types.OrphanTolerate)
	v.SetDefault(cfgKeyFormat, string(codec.FormatJSONL))
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{cfgKeyOrphanPolicy, cfgKeyFormat, cfgKeyLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	v.Set(cfgKeyConfigDir, configDir)
	return v, nil
}

// settings builds store settings from the loaded configuration.
func settings(v *viper.Viper) (types.Settings, error) {
	s := types.Settings{OrphanPolicy: v.GetString(cfgKeyOrphanPolicy)}
	if err := s.Validate(); err != nil {
		return types.Settings{}, err
	}
	return s, nil
}

// defaultFormat returns the configured default record format.
func defaultFormat(v *viper.Viper) (codec.Format, error) {
	return codec.ParseFormat(v.GetString(cfgKeyFormat))
}

// writeIfMissing creates path with content unless it already exists.
// It reports whether the file was written.
func writeIfMissing(path, content string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// newLogger builds a text handler on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l})), nil
}

// configPath returns the config.yaml path inside configDir.
func configPath(configDir string) string {
	return paths.ConfigFile(configDir)
}
