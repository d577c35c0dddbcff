// Package config holds the application settings: compiled-in defaults
// overlaid by an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings is the full application configuration.
type Settings struct {
	Window  WindowSettings  `toml:"window"`
	Picking PickingSettings `toml:"picking"`
	Camera  CameraSettings  `toml:"camera"`
	World   WorldSettings   `toml:"world"`
	Assets  AssetSettings   `toml:"assets"`
	Debug   bool            `toml:"debug"`
}

type WindowSettings struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// 0 disables the frame limiter
	MaxFPS int `toml:"max_fps"`
}

// PickingSettings sizes the off-screen picking target. The width follows
// the window aspect: 600 for the default 900x600 window.
type PickingSettings struct {
	Height int `toml:"height"`
}

type CameraSettings struct {
	Speed       float32    `toml:"speed"`
	Sensitivity float32    `toml:"sensitivity"`
	FOV         float32    `toml:"fov"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
	Position    [3]float32 `toml:"position"`
	Yaw         float32    `toml:"yaw"`
	Pitch       float32    `toml:"pitch"`
}

// Fill modes for the initial chunk
const (
	FillRandom = "random"
	FillDirt   = "dirt"
)

type WorldSettings struct {
	Seed uint64 `toml:"seed"`
	Fill string `toml:"fill"`
}

type AssetSettings struct {
	ShadersDir   string `toml:"shaders_dir"`
	Atlas        string `toml:"atlas"`
	WatchShaders bool   `toml:"watch_shaders"`
	ExportPath   string `toml:"export_path"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: 900, Height: 600, Title: "mini-voxel", MaxFPS: 144},
		Picking: PickingSettings{Height: 400},
		Camera: CameraSettings{
			Speed:       2.568,
			Sensitivity: 0.687,
			FOV:         45,
			Near:        0.1,
			Far:         100,
			Position:    [3]float32{1.5, 2.5, 8},
			Yaw:         -90,
			Pitch:       -15,
		},
		World: WorldSettings{Seed: 1, Fill: FillRandom},
		Assets: AssetSettings{
			ShadersDir: "assets/shaders",
			Atlas:      "assets/textures/atlas.png",
			ExportPath: "chunk.glb",
		},
	}
}

// Load returns Default overlaid with the TOML file at path. A missing file
// yields the defaults unchanged.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Validate reports the first setting that cannot work.
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	case s.Picking.Height <= 0:
		return fmt.Errorf("picking height %d must be positive", s.Picking.Height)
	case s.Window.MaxFPS < 0:
		return fmt.Errorf("max_fps %d must not be negative", s.Window.MaxFPS)
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("fov %v out of range (0, 180)", s.Camera.FOV)
	case s.Camera.Near <= 0:
		return fmt.Errorf("near plane %v must be positive", s.Camera.Near)
	case s.Camera.Near >= s.Camera.Far:
		return fmt.Errorf("near plane %v must be closer than far plane %v", s.Camera.Near, s.Camera.Far)
	case s.World.Fill != FillRandom && s.World.Fill != FillDirt:
		return fmt.Errorf("unknown fill mode %q", s.World.Fill)
	}
	return nil
}

// Encode writes s as TOML, e.g. to produce a starting config file.
func (s Settings) Encode() ([]byte, error) {
	return toml.Marshal(s)
}
