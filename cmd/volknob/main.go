package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chaz8081/volknob/internal/ble"
	"github.com/chaz8081/volknob/internal/config"
	"github.com/chaz8081/volknob/internal/deviceid"
	"github.com/chaz8081/volknob/internal/encoder"
	"github.com/chaz8081/volknob/internal/inject"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "path to config file (default: ~/.config/volknob/config.yaml)")
	initConfig := flag.Bool("init", false, "write the default config file and exit")
	flag.Parse()

	if *initConfig {
		path, err := config.WriteDefault()
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	printBanner(cfg)

	mgr := ble.NewManager(deviceid.Default(cfg.Device.ID), keyboardFactory(cfg), ble.Options{
		NamePrefix: cfg.Device.NamePrefix,
		OnTransition: func(tr ble.Transition) {
			slog.Debug("[BLE] transition", "from", tr.From.String(), "to", tr.To.String())
		},
	})

	if err := mgr.Init(); err != nil {
		log.Fatalf("Failed to start Bluetooth: %v\n\nCheck that the adapter is powered on, or set backend: local.", err)
	}

	listener := encoder.NewListener(encoder.Bindings{
		Clockwise:        cfg.Encoder.Clockwise,
		CounterClockwise: cfg.Encoder.CounterClockwise,
		Click:            cfg.Encoder.Click,
	})
	go listener.Start()

	// Signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("Ready as %s. Ctrl+C to quit.", mgr.DeviceName())

	// Every Manager call happens on this goroutine.
	events := listener.Events()
	for {
		select {
		case <-ticker.C:
			mgr.Update()

		case ev, ok := <-events:
			if !ok {
				log.Println("Encoder listener stopped")
				mgr.Shutdown()
				return
			}
			mgr.HandleEncoderEvent(ev)

		case sig := <-sigCh:
			log.Printf("Received %s, shutting down...", sig)
			mgr.Shutdown()
			log.Println("Goodbye!")
			// Exit directly to avoid gohook's C cleanup crash.
			// The OS reclaims the event hook on process exit.
			os.Exit(0)
		}
	}
}

// keyboardFactory picks the Keyboard backend named in the config.
func keyboardFactory(cfg *config.Config) ble.KeyboardFactory {
	if cfg.Backend == "local" {
		return inject.Factory
	}
	opts := ble.PeripheralOptions{Manufacturer: cfg.Device.Manufacturer}
	return func(name string) (ble.Keyboard, error) {
		return ble.NewPeripheralKeyboard(name, opts)
	}
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	// No config file, use defaults
	log.Println("No config file found, using defaults")
	return config.Default(), nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config) {
	fmt.Println("=== volknob ===")
	fmt.Printf("  Backend:  %s\n", cfg.Backend)
	fmt.Printf("  Prefix:   %s\n", cfg.Device.NamePrefix)
	fmt.Printf("  Poll:     %s\n", cfg.PollInterval)
	fmt.Printf("  CW:       %s\n", strings.Join(cfg.Encoder.Clockwise, "+"))
	fmt.Printf("  CCW:      %s\n", strings.Join(cfg.Encoder.CounterClockwise, "+"))
	fmt.Printf("  Click:    %s\n", strings.Join(cfg.Encoder.Click, "+"))
	fmt.Printf("  Log:      %s\n", cfg.LogLevel)
	fmt.Println("===============")
}
