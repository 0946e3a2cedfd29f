package main

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/sound"
	"github.com/aeolun/superchat-widgets/pkg/client/ui"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/linkpreview"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

//go:embed fixtures.json
var defaultFixtures []byte

func main() {
	configPath := flag.String("config", "~/.config/superchat/widgets.toml", "Config file path")
	statePath := flag.String("state", "~/.local/share/superchat/widgets.db", "Settings database path")
	fixturesPath := flag.String("fixtures", "", "Fixture JSON (default: built-in samples)")
	metricsAddr := flag.String("metrics-addr", "", "Serve /metrics on this address (overrides config)")
	debug := flag.Bool("debug", false, "Write a debug log to preview-demo.log")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *debug {
		logFile, err := os.OpenFile("preview-demo.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer logFile.Close()
		logger = log.New(logFile, "", log.LstdFlags|log.Lmicroseconds)
	}

	if err := run(*configPath, *statePath, *fixturesPath, *metricsAddr, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, statePath, fixturesPath, metricsAddr string, logger *log.Logger) error {
	config, err := settings.LoadConfig(configPath)
	if err != nil {
		return err
	}

	path, err := settings.ExpandPath(statePath)
	if err != nil {
		return err
	}
	state, err := settings.OpenState(path)
	if err != nil {
		return err
	}
	defer state.Close()

	m := metrics.New()
	store := settings.NewStore(state, config.Defaults(), logger, m)

	if metricsAddr == "" {
		metricsAddr = config.Metrics.ListenAddr
	}
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			logger.Printf("Metrics listening on %s", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Printf("Metrics server error: %v", err)
			}
		}()
	}

	fixtureData := defaultFixtures
	if fixturesPath != "" {
		if fixtureData, err = os.ReadFile(fixturesPath); err != nil {
			return fmt.Errorf("failed to read fixtures: %w", err)
		}
	}
	fixtures, err := ui.LoadFixtures(fixtureData)
	if err != nil {
		return err
	}

	mediaDir, err := settings.ExpandPath(config.Sound.MediaDir)
	if err != nil {
		return err
	}
	soundContainer := sound.NewContainer(store, sound.NewBeepPlayer(logger), mediaDir, logger, m)

	resolver := media.NewResolver(config.Media.HomeserverURL)

	// widgets notify from settings callbacks, which can run inside Update;
	// sending from a goroutine keeps the program loop from deadlocking
	var program atomic.Pointer[tea.Program]
	notify := func(msg tea.Msg) {
		if p := program.Load(); p != nil {
			go p.Send(msg)
		}
	}

	zone.NewGlobal()
	model := ui.NewModel(ui.Deps{
		Store:      store,
		Renderer:   linkpreview.NewRenderer(resolver, nil, config.Preview.LinkBase),
		Resolver:   resolver,
		Sound:      soundContainer,
		SoundPacks: soundPacks(mediaDir, config.Sound.SoundPack),
		Zones:      zones.Bubble(),
		Metrics:    m,
		Logger:     logger,
		Notify:     notify,
		Scan:       zone.Scan,
	}, fixtures)

	watcher, err := settings.NewConfigWatcher(configPath, store, 200*time.Millisecond, logger, func(cfg settings.TOMLConfig) {
		logger.Printf("Config reloaded (homeserver %s)", cfg.Media.HomeserverURL)
	})
	if err != nil {
		logger.Printf("Config watching disabled: %v", err)
	} else if err := watcher.Start(); err != nil {
		logger.Printf("Config watching disabled: %v", err)
		watcher.Stop()
	} else {
		defer watcher.Stop()
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	program.Store(p)

	final, err := p.Run()
	if fm, ok := final.(ui.Model); ok {
		fm.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}

// soundPacks lists the pack directories under mediaDir, always including
// the configured one
func soundPacks(mediaDir, current string) []string {
	packs := []string{current}
	entries, err := os.ReadDir(mediaDir)
	if err != nil {
		return packs
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != current {
			packs = append(packs, filepath.Base(e.Name()))
		}
	}
	return packs
}
