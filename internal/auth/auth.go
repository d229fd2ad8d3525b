// Package auth adapts the teacher's account-resolution pattern
// (requireAccount(flags), newDocsService(ctx, account), referenced
// throughout docs_sed.go/docs_edit.go but not retrieved in the pack) into a
// minimal credential flow: enough for cmd/extradoc to point the engine at a
// live document for manual smoke-testing. The reconcile core never imports
// this package (spec.md §1 excludes the credential flow from its scope).
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

const keyringService = "extradoc"

// Flags is the account-selection subset of cmd/extradoc's root flags,
// mirroring the teacher's RootFlags.Account field (referenced as
// *RootFlags throughout docs_sed.go).
type Flags struct {
	Account string `name:"account" help:"Google account email identifying stored credentials" env:"EXTRADOC_ACCOUNT"`
}

// RequireAccount resolves the account to use, failing with a usage-shaped
// error when none was given — the same "flag required, else fail fast"
// contract requireAccount enforces in the teacher.
func RequireAccount(f *Flags) (string, error) {
	if f.Account != "" {
		return f.Account, nil
	}
	return "", fmt.Errorf("no account specified: pass --account or set EXTRADOC_ACCOUNT")
}

func openKeyring() (keyring.Keyring, error) {
	return keyring.Open(keyring.Config{
		ServiceName: keyringService,
	})
}

// oauthConfig builds the installed-app OAuth2 config from environment
// variables; extradoc ships no baked-in client secret.
func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("EXTRADOC_OAUTH_CLIENT_ID"),
		ClientSecret: os.Getenv("EXTRADOC_OAUTH_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		Scopes:       []string{docs.DocumentsScope, docs.DriveFileScope},
		RedirectURL:  "http://localhost:8085/oauth2/callback",
	}
}

// AuthCodeURL builds the URL the account owner visits to grant access.
// state carries the account so a future multi-account callback server
// could disambiguate; the out-of-band code flow below doesn't need it.
func AuthCodeURL(state string) string {
	return oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an out-of-band auth code for a token.
func Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return oauthConfig().Exchange(ctx, code)
}

// SaveToken persists tok under account in the OS keyring, keyed by account
// email, so multiple accounts can be switched between with --account.
func SaveToken(account string, tok *oauth2.Token) error {
	kr, err := openKeyring()
	if err != nil {
		return fmt.Errorf("open keyring: %w", err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return kr.Set(keyring.Item{Key: account, Data: data})
}

func loadToken(account string) (*oauth2.Token, error) {
	kr, err := openKeyring()
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	item, err := kr.Get(account)
	if err != nil {
		return nil, fmt.Errorf("no stored credentials for %q: %w", account, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(item.Data, &tok); err != nil {
		return nil, fmt.Errorf("decode stored token for %q: %w", account, err)
	}
	return &tok, nil
}

// NewDocsService builds an authenticated Docs API client for account,
// refreshing its stored token as needed. Mirrors the teacher's
// newDocsService(ctx, account) signature.
func NewDocsService(ctx context.Context, account string) (*docs.Service, error) {
	tok, err := loadToken(account)
	if err != nil {
		return nil, err
	}
	ts := oauthConfig().TokenSource(ctx, tok)
	svc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}
	return svc, nil
}
