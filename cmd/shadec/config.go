package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is shadec.yaml: the handful of project-wide settings the
// resolver/build orchestration (out of the core's scope per §1) would
// normally derive from a manifest, loaded with the ordinary
// yaml.Unmarshal-onto-a-struct idiom rather than a bespoke format.
type ProjectConfig struct {
	// Module is this package's module path, fed to the name mangler as
	// the "<module>" half of "<module>.<item>" (§6).
	Module string `yaml:"module"`

	// Target names a built-in target.Target ("x86_64", "aarch64",
	// "i686"), or is empty to default to "x86_64". TargetFile, if set,
	// overrides this with a target.Load'd YAML description instead.
	Target     string `yaml:"target,omitempty"`
	TargetFile string `yaml:"target_file,omitempty"`

	// Out is the path the rendered object dump is written to.
	// TypeMapOut, if set, additionally persists the package's type map
	// (C3) so a dependent package can load it without re-inferring.
	Out        string `yaml:"out"`
	TypeMapOut string `yaml:"typemap_out,omitempty"`
}

func loadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shadec: reading %s: %w", path, err)
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("shadec: parsing %s: %w", path, err)
	}
	if cfg.Module == "" {
		cfg.Module = "main"
	}
	if cfg.Out == "" {
		cfg.Out = "test.s"
	}
	return &cfg, nil
}
