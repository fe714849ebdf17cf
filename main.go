package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-patchbridge/audio"
	"go-patchbridge/config"
	"go-patchbridge/debug"
	"go-patchbridge/engine"
	"go-patchbridge/midi"
	"go-patchbridge/surface"
	"go-patchbridge/theme"
	"go-patchbridge/tui"
)

func main() {
	debugFlag := flag.Bool("debug", false, "write debug.log to the config directory")
	noAudio := flag.Bool("noaudio", false, "clock the engine without opening the sound card")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *debugFlag || cfg.Debug {
		if dir, err := config.ConfigDir(); err == nil {
			if err := debug.Enable(dir); err != nil {
				fmt.Printf("Warning: %v\n", err)
			}
			defer debug.Disable()
		}
	}

	// Load theme
	palette := theme.DefaultPalette()
	if cfg.UI.Palette != "" {
		if p, err := theme.LoadGPL(cfg.UI.Palette); err == nil {
			palette = p
		} else {
			debug.Log("main", "palette: %v", err)
		}
	}
	th := theme.New(palette)

	// Build the patch before the engine starts; no lock needed yet
	inst := engine.NewInstance(cfg.Audio.SampleRate)
	root, sub := buildDemo(inst, cfg.UI.Zoom)

	session := surface.NewSession(inst, surface.Options{
		MirrorCapacity: cfg.Mirror.Capacity,
		CCMap:          cfg.CCMap(),
	})
	session.Attach()
	rootID := session.Load(root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Audio.Enabled && !*noAudio {
		drv, err := audio.Open(inst, cfg.Audio.SampleRate, cfg.Audio.BlockSize)
		if err != nil {
			debug.Log("main", "%v, falling back to clock", err)
			go audio.RunClock(ctx, inst, cfg.Audio.SampleRate, cfg.Audio.BlockSize)
		} else {
			drv.Start()
			defer drv.Close()
		}
	} else {
		go audio.RunClock(ctx, inst, cfg.Audio.SampleRate, cfg.Audio.BlockSize)
	}

	go promoteLater(ctx, inst, sub, 5*time.Second)

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(cfg.MIDI.Inputs)
	go deviceMgr.Run(ctx)

	refresh := time.Duration(cfg.Mirror.RefreshMs) * time.Millisecond
	m := tui.NewModel(session, rootID, deviceMgr, th, refresh)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
