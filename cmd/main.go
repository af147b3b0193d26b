// Package main is the production entry point for HarmonyViz.
//
// HarmonyViz is a real-time audio spectrum visualizer with clean architecture:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
//
// Build:
//
//	go build -o build/harmonyviz ./cmd
//
// Run:
//
//	./build/harmonyviz
package main

import (
	"fmt"
	"log"

	"github.com/sumedhbadnore/harmonyviz/internal/app"
)

func main() {
	config := app.DefaultConfig()

	// Use the real portaudio/beep audio stack
	config.UseMockAudio = false

	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		fmt.Println("\nShutting down...")
		application.Shutdown()
		fmt.Println("Shutdown complete")
	}()

	// Run application (blocks until the window closed)
	application.Run()

	fmt.Println("Application exited cleanly")
}
