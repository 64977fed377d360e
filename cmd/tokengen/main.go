package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goserg/inhouse/internal/auth"
	"github.com/goserg/inhouse/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var subject string
	flag.StringVar(&subject, "subject", "", "operator name written into the token")
	flag.Parse()
	if subject == "" {
		return errors.New("subject is required")
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	authService := auth.New(cfg.Auth)
	if !authService.Enabled() {
		return errors.New("auth secret is not configured")
	}
	token, expiresAt, err := authService.Issue(subject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires", expiresAt.Format(time.DateTime))
	return nil
}
