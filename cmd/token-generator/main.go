// Command token-generator mints a signed JWT for calling the admin
// generation endpoints. It reads the signing secret from the same
// configuration sources as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/productgen/internal/config"
	"github.com/phrazzld/productgen/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "token-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	subject := fs.String("subject", "", "token subject, e.g. the operator's email (required)")
	role := fs.String("role", auth.RoleAdmin, "role claim")
	configPath := fs.String("config", "", "optional config file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *subject == "" {
		return fmt.Errorf("-subject is required")
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return mint(cfg.Auth, *subject, *role, out)
}

func mint(cfg config.AuthConfig, subject, role string, out io.Writer) error {
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return err
	}
	token, err := jwtService.GenerateToken(context.Background(), subject, role)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
