package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/renato0307/tutor/internal/adapters/devengine"
)

// DevEngineCmd runs the scripted tutoring engine
type DevEngineCmd struct {
	Addr string `help:"Address to listen on" default:"127.0.0.1:5001"`
}

// Run serves the dev engine until interrupted
func (d *DevEngineCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings()
	engine := devengine.New(devengine.Config{
		TimeUpMessage: settings.TimeUpMessage,
		YesNoState:    settings.YesNoState,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Dev engine listening on http://%s (Ctrl+C to stop)\n", d.Addr)
	return engine.Serve(ctx, d.Addr)
}
