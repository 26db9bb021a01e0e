// Command test-mediakey is a manual test for a Keyboard backend.
// It waits for a connection, then taps one media key.
//
// Usage:
//
//	go run ./cmd/test-mediakey [--backend ble|local] [--key up|down|mute]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chaz8081/volknob/internal/ble"
	"github.com/chaz8081/volknob/internal/ble/hid"
	"github.com/chaz8081/volknob/internal/inject"
)

func main() {
	backend := flag.String("backend", "local", "keyboard backend: ble or local")
	keyName := flag.String("key", "up", "media key: up, down or mute")
	wait := flag.Duration("wait", 30*time.Second, "how long to wait for a central (ble only)")
	flag.Parse()

	keys := map[string]hid.MediaKey{
		"up":   hid.VolumeUp,
		"down": hid.VolumeDown,
		"mute": hid.Mute,
	}
	key, ok := keys[*keyName]
	if !ok {
		fmt.Printf("Unknown key %q\n", *keyName)
		os.Exit(2)
	}

	var kbd ble.Keyboard
	switch *backend {
	case "local":
		kbd = inject.NewLocalKeyboard("CM-TEST")
	case "ble":
		var err error
		kbd, err = ble.NewPeripheralKeyboard("CM-TEST", ble.PeripheralOptions{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Printf("Unknown backend %q\n", *backend)
		os.Exit(2)
	}
	defer kbd.Close()

	if err := kbd.Begin(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Waiting for a connection...")
	deadline := time.Now().Add(*wait)
	for !kbd.IsConnected() {
		if time.Now().After(deadline) {
			fmt.Println("No central connected, giving up.")
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	if err := kbd.Write(key); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("\nSent %s\n", key)
}
