package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "mini-voxel.toml", "path to a TOML settings file")
	writeConfig := flag.Bool("write-config", false, "write the default settings to -config and exit")
	flag.Parse()

	if *writeConfig {
		data, err := config.Default().Encode()
		if err != nil {
			log.Fatalf("encode config: %v", err)
		}
		if err := os.WriteFile(*configPath, data, 0o644); err != nil {
			log.Fatalf("write config: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		log.Fatalf("window: %v", err)
	}

	g, err := game.New(window, cfg)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer g.Close()

	g.Run()
}
