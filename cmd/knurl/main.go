package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"knurl/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	settingsPath := flag.String("settings", "", "override settings path (optional)")
	speaker := flag.String("speaker", "", "speaker address, e.g. 192.168.1.40 (overrides settings)")
	step := flag.Int("step", 0, "volume units per detent: 1, 2, 5 or 10 (overrides settings)")
	pollSeconds := flag.Int("poll", 0, "reconciliation poll interval in seconds (optional, defaults to 2s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		SettingsPath: *settingsPath,
		Speaker:      *speaker,
		Step:         *step,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "knurl: %v\n", err)
		return 1
	}
	return 0
}
