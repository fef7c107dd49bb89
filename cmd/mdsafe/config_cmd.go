package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdsafe/internal/yamlutil"
	flag "github.com/spf13/pflag"
)

// runConfig prints the effective configuration as YAML after the config
// file and environment are applied.
func runConfig(args []string, env *Environment) error {
	flags, _, err := parseCommonFlags("config", args)
	if errors.Is(err, flag.ErrHelp) {
		printConfigUsage(env.Stdout)
		return err
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
