package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"docqa/internal/client"
	"docqa/internal/tui"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", "http://localhost:8000", "Base URL of a running docqa server")
	flag.Parse()

	api := client.New(*addr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Health(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach server at %s: %v\n", *addr, err)
		os.Exit(1)
	}

	m := tui.New(api)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
