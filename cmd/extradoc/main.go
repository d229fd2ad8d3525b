// Command extradoc is a thin CLI driving the reconciliation engine end to
// end against on-disk XML fixtures, in the teacher's kong-based command
// style (internal/cmd's per-command struct + Run(ctx, *RootFlags) shape).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/extradoc/extradoc/internal/auth"
	"github.com/extradoc/extradoc/internal/config"
	"github.com/extradoc/extradoc/internal/outfmt"
	"github.com/extradoc/extradoc/internal/ui"
)

// RootFlags mirrors the teacher's RootFlags (referenced as *RootFlags
// throughout docs_sed.go, exposing --dry-run and an account selector), now
// also exposing reconcile.Config's four options as flags.
type RootFlags struct {
	auth.Flags
	JSON                 bool   `name:"json" help:"Emit JSON instead of tab-separated text"`
	DryRun               bool   `name:"dry-run" help:"Print the planned batches without applying them"`
	ConfigPath           string `name:"config" help:"Path to a YAML config file" default:"extradoc.yaml"`
	PreserveListIdentity bool   `name:"preserve-list-identity" help:"Accepted and passed to the engine; the emitter does not read it" default:"true"`
	StrictSectionBreaks  bool   `name:"strict-section-breaks" help:"Fail instead of skip when a change touches a section break" default:"true"`
	HorizontalRulePolicy string `name:"horizontal-rule-policy" help:"skip or error when a change touches a horizontal rule" default:"skip" enum:"skip,error"`
	MaxBatches           int    `name:"max-batches" help:"Fail if the batch plan would exceed this many batches" default:"32"`
}

// CLI is the top-level kong command tree.
type CLI struct {
	RootFlags
	Reconcile ReconcileCmd `cmd:"" help:"Diff two XML snapshots and print the resulting batch plan"`
	Explain   ExplainCmd   `cmd:"" help:"Diff two XML snapshots and print a colored human-readable explanation"`
	Apply     ApplyCmd     `cmd:"" help:"Diff two XML snapshots and apply the batch plan to a live document"`
	Login     LoginCmd     `cmd:"" help:"Authorize an account and store its token in the OS keyring"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("extradoc"),
		kong.Description("Google Docs diff and reconciliation engine"),
	)

	ctx := context.Background()
	ctx = ui.WithUI(ctx, ui.New())
	ctx = outfmt.WithJSON(ctx, cli.JSON)

	err := kctx.Run(ctx, &cli.RootFlags)
	kctx.FatalIfErrorf(err)
}

// usage mirrors the teacher's usage() sentinel-error helper, referenced
// throughout docs_sed.go for flag-validation failures.
func usage(msg string) error {
	return fmt.Errorf("usage: %s", msg)
}

func loadAccount(flags *RootFlags) (string, error) {
	if flags.Account != "" {
		return flags.Account, nil
	}
	f, err := config.Load(flags.ConfigPath)
	if err != nil {
		return "", err
	}
	if f.Account == "" {
		return "", usage(fmt.Sprintf("no account specified: pass --account or set it in %s", flags.ConfigPath))
	}
	return f.Account, nil
}

func readSnapshots(pristinePath, currentPath string) (pristine, current []byte, err error) {
	pristine, err = os.ReadFile(pristinePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read pristine snapshot: %w", err)
	}
	current, err = os.ReadFile(currentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read current snapshot: %w", err)
	}
	return pristine, current, nil
}
