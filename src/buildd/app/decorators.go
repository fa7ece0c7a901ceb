package app

import (
	"fmt"
	"os"
	"path"

	"github.com/uber/buildd/src/buildd/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Context describes where the daemon runs.
type Context struct {
	Environment        string `yaml:"environment"`
	RuntimeEnvironment string `yaml:"runtimeEnvironment"`
}

const (
	// EnvLocal indicates that the daemon is running on a developer machine.
	EnvLocal = "local"

	// EnvDevelopment indicates that the daemon is running from a development checkout.
	EnvDevelopment = "development"

	_envBuilddEnvironment = "BUILDD_ENVIRONMENT"
)

func decorateEnvContext(env Context) Context {
	envValue := EnvLocal
	if os.Getenv(_envBuilddEnvironment) == EnvDevelopment {
		envValue = EnvDevelopment
	}

	env.Environment = envValue
	env.RuntimeEnvironment = envValue
	return env
}

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Env Context
	Cfg config.Provider
	FS  fs.BuilddFS
}

// decorateConfigProvider runs the startup steps that depend on configuration before any module reads it.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	combined, err := ensureLogFolder(p.Cfg, p.FS)
	if err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	return combined, nil
}

// ensureLogFolder creates the directory of every file the logger writes to. Standard streams
// need none.
func ensureLogFolder(cfg config.Provider, fs fs.BuilddFS) (config.Provider, error) {
	var c zap.Config
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	seen := make(map[string]struct{}, len(c.OutputPaths))
	for _, output := range c.OutputPaths {
		if output == "stdout" || output == "stderr" {
			continue
		}
		dir := path.Dir(output)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("creating logging directory %q: %v", dir, err)
		}
	}
	return cfg, nil
}
