package main

import (
	"context"
	"fmt"
	"os"

	"github.com/extradoc/extradoc/internal/outfmt"
	"github.com/extradoc/extradoc/internal/reconcile"
	"github.com/extradoc/extradoc/internal/ui"
)

// ReconcileCmd prints the batch plan for turning pristine into current,
// mirroring DocsEditCmd's "load args, run the operation, print a status
// line or JSON" shape.
type ReconcileCmd struct {
	PristinePath string `arg:"" name:"pristine" help:"Path to the pristine XML snapshot" type:"existingfile"`
	CurrentPath  string `arg:"" name:"current" help:"Path to the current XML snapshot" type:"existingfile"`
}

func (c *ReconcileCmd) Run(ctx context.Context, flags *RootFlags) error {
	u := ui.FromContext(ctx)

	pristine, current, err := readSnapshots(c.PristinePath, c.CurrentPath)
	if err != nil {
		return err
	}

	res, err := reconcile.Reconcile(pristine, current, resolveConfig(flags))
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	for _, w := range res.Warnings {
		u.Warn("%s: %s", w.NodePath, w.Msg)
	}

	if outfmt.IsJSON(ctx) {
		return outfmt.WriteJSON(ctx, os.Stdout, res)
	}

	u.Out().Printf("status\tok")
	u.Out().Printf("batches\t%d", len(res.Batches))
	for i, batch := range res.Batches {
		u.Out().Printf("batch[%d]\t%d requests", i, len(batch))
		for _, rec := range batch {
			u.Out().Printf("  %s", rec.Op)
		}
	}
	return nil
}
