package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/renato0307/tutor/internal/config"
	"github.com/renato0307/tutor/internal/server"
)

// ServeCmd serves the tutoring TUI over SSH
type ServeCmd struct {
	AuthorizedKeys  string `help:"authorized_keys file listing the keys allowed to connect; each key's comment is the student it logs in as" env:"TUTOR_AUTHORIZED_KEYS" default:"~/.ssh/authorized_keys"`
	Dev             bool   `help:"Enable development mode for every connection" env:"TUTOR_DEV"`
	ErrorClearDelay int    `help:"Seconds before error messages auto-clear" env:"TUTOR_ERROR_CLEAR_DELAY" default:"10"`
	Host            string `help:"Address to listen on" env:"TUTOR_SSH_HOST" default:"localhost"`
	Port            string `help:"Port to listen on" env:"TUTOR_SSH_PORT" default:"23234"`
}

// Run starts the SSH server and blocks until interrupted
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings()
	applyString(&s.Host, config.DefaultSSHHost, "TUTOR_SSH_HOST", settings.SSHHost)
	applyString(&s.Port, config.DefaultSSHPort, "TUTOR_SSH_PORT", settings.SSHPort)
	applyInt(&s.ErrorClearDelay, config.DefaultErrorClearDelay, "TUTOR_ERROR_CLEAR_DELAY", settings.ErrorClearDelay)

	srv, err := server.NewServer(server.Config{
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		Host:               s.Host,
		HostKeyPath:        filepath.Join(config.GetSSHDir(), "id_ed25519"),
		Port:               s.Port,
	}, cli.Container.SessionFactory(s.Dev, s.ErrorClearDelay))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving tutor on ssh://%s (Ctrl+C to stop)\n", srv.Addr())
	return srv.Serve(ctx)
}
