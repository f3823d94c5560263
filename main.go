package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/config"
)

func main() {
	configPath := flag.String("config", "", "path to a tuning yaml; watched for changes")
	assetsDir := flag.String("assets", "assets", "directory holding images, sounds and skins")
	fullscreen := flag.Bool("fullscreen", false, "start fullscreen")
	flag.Parse()

	assets.SetRoot(*assetsDir)

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatal(err)
	}

	var watcher *config.Watcher
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			log.Printf("config: %v, using defaults", err)
		} else {
			cfg = loaded
		}
		watcher, err = config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("config watch: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("N Game Runner")
	if *fullscreen {
		ebiten.SetFullscreen(true)
	}

	if err := ebiten.RunGame(NewGame(cfg, watcher)); err != nil {
		log.Fatal(err)
	}
}
