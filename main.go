package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pherosiden/gfxdemo/internal/config"
	"github.com/pherosiden/gfxdemo/internal/fx"
	"github.com/pherosiden/gfxdemo/internal/music"
	"github.com/pherosiden/gfxdemo/internal/show"
)

func main() {
	log.SetFlags(log.Ltime)

	configPath := flag.String("config", "config.json", "settings file")
	group := flag.String("group", "", "effect group: effects, demo or all")
	effects := flag.String("effects", "", "comma separated effect names, overrides -group")
	duration := flag.Float64("duration", -1, "seconds per effect, 0 waits for a key")
	scale := flag.Int("scale", 0, "window scale")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen")
	loop := flag.Bool("loop", false, "restart after the last effect")
	musicPath := flag.String("music", "", "YM file to play")
	assets := flag.String("assets", "", "assets directory")
	hud := flag.Bool("hud", false, "show the HUD")
	seed := flag.Uint64("seed", 0, "random seed for the effects")
	verbose := flag.Bool("v", false, "verbose logging")
	list := flag.Bool("list", false, "list effects and exit")
	flag.Parse()

	if *list {
		for _, n := range fx.Names() {
			fmt.Println(n)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// flags override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "group":
			cfg.Group = *group
			cfg.Effects = nil
		case "effects":
			cfg.Effects = splitList(*effects)
		case "duration":
			cfg.Duration = *duration
		case "scale":
			cfg.Scale = *scale
		case "fullscreen":
			cfg.Fullscreen = *fullscreen
		case "loop":
			cfg.Loop = *loop
		case "music":
			cfg.Music = *musicPath
		case "assets":
			cfg.AssetsDir = *assets
		case "hud":
			cfg.ShowHUD = *hud
		case "seed":
			cfg.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	names := cfg.Effects
	if len(names) == 0 {
		if names, err = fx.Group(cfg.Group); err != nil {
			log.Fatal(err)
		}
	}

	env := fx.NewEnv(cfg.Width, cfg.Height, cfg.AssetsDir)
	env.Seed = cfg.Seed
	env.Verbose = *verbose
	env.Log = log.New(os.Stderr, "", log.Ltime)

	game, err := show.NewGame(env, names, show.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Duration:   cfg.Duration,
		Transition: cfg.Transition,
		Loop:       cfg.Loop,
		ShowHUD:    cfg.ShowHUD,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	soundtrack, err := music.Play(cfg.Music, cfg.MusicVolume)
	if err != nil {
		log.Printf("Failed to start music: %v", err)
	}
	defer soundtrack.Close()

	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle("gfxdemo - " + strings.Join(names, ", "))
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
