// Wand sandbox: a terminal top-down view of the casting core driving the
// arena world. Keys select spells, pull the trigger and aim the wand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/spell"
)

func main() {
	configPath := flag.String("config", "", "settings file (yaml, toml or json)")
	debug := flag.Bool("debug", false, "write logs to "+logDir)
	flag.Parse()

	logFile := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	sb, err := newSandbox(cfg, catalog, engine.NewMonotonicTimeProvider())
	if err != nil {
		return err
	}
	if err := sb.player.Initialize(); err != nil {
		// Non-fatal, the sandbox runs without sound
		log.Printf("audio initialization failed: %v", err)
	}
	defer sb.player.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case input <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	v := newView(screen)
	if d, err := catalog.ByID(1); err == nil {
		sb.arb.Select(d)
	}

	err = sb.loop.Run(ctx, cfg.Engine.TickInterval(), func(engine.Tick) {
		for {
			select {
			case ev := <-input:
				switch ev := ev.(type) {
				case *tcell.EventKey:
					if !sb.apply(keyCommand(ev.Key(), ev.Rune())) {
						cancel()
					}
				case *tcell.EventResize:
					screen.Sync()
					v.resize()
				}
				continue
			default:
			}
			break
		}
		sb.afterTick()
		v.draw(sb)
	})
	if err == context.Canceled {
		return nil
	}
	return err
}

func loadCatalog(path string) (*spell.Catalog, error) {
	if path == "" {
		return spell.DefaultCatalog()
	}
	return spell.LoadCatalogFile(path)
}
