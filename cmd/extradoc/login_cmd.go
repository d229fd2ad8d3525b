package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/extradoc/extradoc/internal/auth"
	"github.com/extradoc/extradoc/internal/ui"
)

// LoginCmd runs the installed-app OAuth flow and stores the resulting
// token in the OS keyring under --account, so later commands can resolve
// a live docs.Service without reauthenticating every run. It takes
// RootFlags rather than its own embedded auth.Flags so it shares the
// root --account flag instead of declaring a second one.
type LoginCmd struct{}

func (c *LoginCmd) Run(ctx context.Context, flags *RootFlags) error {
	u := ui.FromContext(ctx)

	account, err := auth.RequireAccount(&flags.Flags)
	if err != nil {
		return err
	}

	u.Out().Printf("open this URL and authorize access, then paste the code below:")
	u.Out().Printf("%s", auth.AuthCodeURL(account))
	u.Out().Printf("code: ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("read auth code: %w", err)
	}

	tok, err := auth.Exchange(ctx, strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("exchange auth code: %w", err)
	}
	if err := auth.SaveToken(account, tok); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	u.Out().Printf("status\tok\taccount\t%s", account)
	return nil
}
