// cmd/dbvim/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hqnguyen/dbvim/internal/config"
	"github.com/hqnguyen/dbvim/internal/history"
	"github.com/hqnguyen/dbvim/internal/registry"
	"github.com/hqnguyen/dbvim/internal/ui"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging to debug.log")
	flag.Parse()

	if *debug || os.Getenv("DBVIM_DEBUG") != "" {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: could not open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	historyStore, err := history.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize history: %v\n", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	reg := registry.New()
	defer reg.CloseAll()

	model := ui.NewModel(cfg, reg, historyStore)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
