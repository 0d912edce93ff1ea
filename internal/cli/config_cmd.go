// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for tokenpress.
//
// Command: config
//
// Subcommands:
//   show           Print the active configuration (default)
//   get <key>      Print one value by dot-notation key
//   set <key> <v>  Set a value and save the config file
//   path           Print the config file path
//   keys           List all available keys
//
// Examples:
//   tokenpress config show
//   tokenpress config get stats.detail_limit
//   tokenpress config set model claude-opus-4
//   tokenpress config set dashboard.theme light

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/tokenpress/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "get":
		return configGet(args)
	case "set":
		return configSet(args)
	case "path":
		return configPath(args)
	case "keys":
		return configKeys()
	default:
		return fmt.Errorf("config: unknown subcommand %q (want show, get, set, path, or keys)", args.Subcommand)
	}
}

// configShow prints the full active configuration.
func configShow(args Args) error {
	cfg := config.Global()

	if args.JSON {
		fmt.Println(cfg.String())
		return nil
	}

	fmt.Println(TitleStyle.Render("tokenpress configuration"))
	for _, key := range config.GetAllKeys() {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		fmt.Printf("%s %v\n", RenderLabel(key, 30), val)
	}
	return nil
}

// configGet prints one value.
func configGet(args Args) error {
	if args.ConfigKey == "" {
		return fmt.Errorf("config get: key required (see 'tokenpress config keys')")
	}

	val, err := config.Global().Get(args.ConfigKey)
	if err != nil {
		return fmt.Errorf("config get: %w", err)
	}

	if args.JSON {
		out, err := json.Marshal(map[string]interface{}{args.ConfigKey: val})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Printf("%v\n", val)
	return nil
}

// configSet sets a value, validates the result, and saves the config file.
func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("config set: usage: tokenpress config set <key> <value>")
	}

	cfg := config.Global()
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return fmt.Errorf("config set: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config set: invalid value: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("config set: save: %w", err)
	}

	if !args.Quiet {
		fmt.Println(SuccessStyle.Render("✓ ") + ValueStyle.Render(fmt.Sprintf("%s = %s", args.ConfigKey, args.ConfigVal)))
	}
	return nil
}

// configPath prints where the config file lives (or would live).
func configPath(args Args) error {
	tomlPath, err := config.PathTOML()
	if err != nil {
		return fmt.Errorf("config path: %w", err)
	}
	jsonPath, _ := config.PathJSON()

	// Report whichever file exists; default to the TOML path for new setups.
	path := tomlPath
	if _, err := os.Stat(tomlPath); err != nil {
		if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		}
	}

	if args.JSON {
		out, _ := json.Marshal(map[string]string{"path": path})
		fmt.Println(string(out))
		return nil
	}
	fmt.Println(path)
	return nil
}

// configKeys lists every settable key.
func configKeys() error {
	for _, key := range config.GetAllKeys() {
		fmt.Println(key)
	}
	return nil
}
