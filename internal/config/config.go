// Package config reads glide.json, the optional project file that
// points the CLI at a builtins bootstrap other than the bundled
// default (§6).
package config

import (
	"os"

	"github.com/tidwall/gjson"
)

// Config is the handful of settings a glide.json can carry.
// BootstrapPath is empty by default, meaning "use the bundled
// builtins.gl embedded in internal/builtins"; a glide.json that sets
// "settings.builtins_path" (or a top-level "builtins") points the CLI
// at a replacement file on disk instead. MaxCallDepth is read from
// "maxCallDepth" but nothing applies it: the evaluator's ceiling is
// the fixed evaluator.MaxCallDepth.
type Config struct {
	BootstrapPath string
	MaxCallDepth  int
}

// Load reads path (if it exists) via gjson and overlays it onto the
// defaults; a missing file is not an error — every project runs with
// the defaults until it opts into a glide.json.
func Load(path string) (Config, error) {
	cfg := Config{MaxCallDepth: 2000}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	result := gjson.ParseBytes(data)
	bp := result.Get("settings.builtins_path")
	if !bp.Exists() {
		bp = result.Get("builtins")
	}
	if bp.Exists() {
		cfg.BootstrapPath = bp.String()
	}
	if depth := result.Get("maxCallDepth"); depth.Exists() {
		cfg.MaxCallDepth = int(depth.Int())
	}
	return cfg, nil
}
