package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// FilterConfig describes per-logger filter rules, loaded from a yaml file.
// Rules use the zapfilter syntax, for example "debug:replay.* info:*".
type FilterConfig struct {
	Filters []string `yaml:"filters"`
	Level   string   `yaml:"level"`
}

func LoadFilterConfig(path string) (*FilterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FilterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse log config %s: %w", path, err)
	}
	return &cfg, nil
}

// NewWithFilter creates a logger whose output is filtered by the rules of cfg.
// Messages not matched by any rule are dropped.
func NewWithFilter(w io.Writer, level Level, cfg *FilterConfig, opts ...Option) (
	*Logger, error,
) {
	base := New(w, level, opts...)
	if cfg == nil || len(cfg.Filters) == 0 {
		return base, nil
	}
	rules := ""
	for i, f := range cfg.Filters {
		if i > 0 {
			rules += " "
		}
		rules += f
	}
	filterFunc, err := zapfilter.ParseRules(rules)
	if err != nil {
		return nil, fmt.Errorf("invalid log filter rules: %w", err)
	}
	filtered := base.l.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(c, filterFunc)
	}))
	return &Logger{l: filtered, level: level}, nil
}
