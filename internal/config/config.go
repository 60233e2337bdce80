package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"rts-select/internal/input"
	"rts-select/internal/physics"
	"rts-select/internal/selection"
)

// Path is the config file, relative to the process working directory.
const Path = "config/selection.yaml"

// Config holds everything tunable about the selection demo. Persisted across runs.
type Config struct {
	Selection Selection      `yaml:"selection"`
	Input     input.Bindings `yaml:"input"`
	Debug     Debug          `yaml:"debug"`
	Scene     Scene          `yaml:"scene"`
	Log       Log            `yaml:"log"`
}

// Selection tunes the selector. Layers are physics layer indices (0-31).
type Selection struct {
	Team          int     `yaml:"team"`
	ClickRadius   float32 `yaml:"click_radius"`
	MinBoxSize    float32 `yaml:"min_box_size"`
	DragThreshold float32 `yaml:"drag_threshold"`
	FarDistance   float32 `yaml:"far_distance"`
	UnitLayer     int     `yaml:"unit_layer"`
	GroundLayer   int     `yaml:"ground_layer"`
}

type Debug struct {
	ShowFPS      bool          `yaml:"show_fps"`
	ShowMemAlloc bool          `yaml:"show_mem_alloc"`
	DrawRays     bool          `yaml:"draw_rays"`
	RayLifetime  time.Duration `yaml:"ray_lifetime"`
}

// Scene controls the battlefield. TerrainSeed 0 picks a new seed each run.
type Scene struct {
	GridVisible bool  `yaml:"grid_visible"`
	Terrain     bool  `yaml:"terrain"`
	TerrainSeed int64 `yaml:"terrain_seed"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns team 1, ray picking, unit layer 1 over ground layer 0, rays drawn for 3s, the grid
// on and a random terrain.
func Default() Config {
	return Config{
		Selection: Selection{
			Team:          1,
			MinBoxSize:    selection.MinimumBoxSize,
			DragThreshold: 1,
			UnitLayer:     1,
			GroundLayer:   0,
		},
		Input: input.DefaultBindings(),
		Debug: Debug{
			DrawRays:    true,
			RayLifetime: 3 * time.Second,
		},
		Scene: Scene{GridVisible: true, Terrain: true},
		Log:   Log{Level: "info", File: "logs/selection.txt"},
	}
}

// Load reads the config at path over the defaults. A missing file yields Default() without creating
// one; keys absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Default(), errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Save writes c to path, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

// Normalize replaces out-of-range values with their defaults and returns one message per replaced key.
func (c *Config) Normalize() []string {
	def := Default()
	var fixed []string
	replace := func(key string, bad any) {
		fixed = append(fixed, fmt.Sprintf("%s: invalid value %v, using default", key, bad))
	}

	s := &c.Selection
	if s.MinBoxSize <= 0 {
		replace("selection.min_box_size", s.MinBoxSize)
		s.MinBoxSize = def.Selection.MinBoxSize
	}
	if s.DragThreshold <= 0 {
		replace("selection.drag_threshold", s.DragThreshold)
		s.DragThreshold = def.Selection.DragThreshold
	}
	if s.ClickRadius < 0 {
		replace("selection.click_radius", s.ClickRadius)
		s.ClickRadius = def.Selection.ClickRadius
	}
	if s.FarDistance < 0 {
		replace("selection.far_distance", s.FarDistance)
		s.FarDistance = def.Selection.FarDistance
	}
	if !validLayer(s.UnitLayer) {
		replace("selection.unit_layer", s.UnitLayer)
		s.UnitLayer = def.Selection.UnitLayer
	}
	if !validLayer(s.GroundLayer) {
		replace("selection.ground_layer", s.GroundLayer)
		s.GroundLayer = def.Selection.GroundLayer
	}

	b := &c.Input
	if b.Select == "" {
		replace("input.select_button", `""`)
		b.Select = def.Input.Select
	}
	if b.Additive == "" {
		replace("input.additive_key", `""`)
		b.Additive = def.Input.Additive
	}
	if b.Subtractive == "" {
		replace("input.subtractive_key", `""`)
		b.Subtractive = def.Input.Subtractive
	}
	if b.PanCamera == "" {
		replace("input.pan_button", `""`)
		b.PanCamera = def.Input.PanCamera
	}

	if c.Debug.RayLifetime <= 0 {
		replace("debug.ray_lifetime", c.Debug.RayLifetime)
		c.Debug.RayLifetime = def.Debug.RayLifetime
	}
	if c.Log.Level == "" {
		replace("log.level", `""`)
		c.Log.Level = def.Log.Level
	}
	return fixed
}

// SelectionSettings converts the selection section for selection.New.
func (c Config) SelectionSettings() selection.Settings {
	s := c.Selection
	return selection.Settings{
		Team:          s.Team,
		ClickRadius:   s.ClickRadius,
		MinBoxSize:    s.MinBoxSize,
		DragThreshold: s.DragThreshold,
		FarDistance:   s.FarDistance,
		UnitMask:      physics.Layer(s.UnitLayer).Mask(),
		GroundMask:    physics.Layer(s.GroundLayer).Mask(),
	}
}

func validLayer(l int) bool {
	return l >= 0 && l < 32
}
