// Command test-encoder is a manual test for the encoder key bindings.
// Run it, then press Ctrl+Alt+Up/Down/M to see events.
// Press Ctrl+C to exit.
//
// Usage:
//
//	go run ./cmd/test-encoder
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaz8081/volknob/internal/config"
	"github.com/chaz8081/volknob/internal/encoder"
)

func main() {
	enc := config.Default().Encoder
	fmt.Println("Listening for Ctrl+Alt+Up / Ctrl+Alt+Down / Ctrl+Alt+M...")
	fmt.Println("Press Ctrl+C to exit.")

	listener := encoder.NewListener(encoder.Bindings{
		Clockwise:        enc.Clockwise,
		CounterClockwise: enc.CounterClockwise,
		Click:            enc.Click,
	})

	// Handle Ctrl+C
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\nShutting down...")
		listener.Stop()
	}()

	// Read events
	go func() {
		for ev := range listener.Events() {
			switch ev.Type {
			case encoder.EventRotation:
				fmt.Printf("~~~ ROTATE %+d\n", ev.Value)
			case encoder.EventClick:
				fmt.Println(">>> CLICK")
			}
		}
		fmt.Println("Event channel closed.")
	}()

	// Blocks until stopped
	listener.Start()
	fmt.Println("Done.")
}
