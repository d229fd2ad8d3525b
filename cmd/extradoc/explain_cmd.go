package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/extradoc/extradoc/internal/reconcile"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/ui"
)

// ExplainCmd prints a colored, human-readable rendering of the batch plan,
// the dry-run/explain output spec.md §7's warning channel and ui.Diff were
// built for.
type ExplainCmd struct {
	PristinePath string `arg:"" name:"pristine" help:"Path to the pristine XML snapshot" type:"existingfile"`
	CurrentPath  string `arg:"" name:"current" help:"Path to the current XML snapshot" type:"existingfile"`
}

func (c *ExplainCmd) Run(ctx context.Context, flags *RootFlags) error {
	u := ui.FromContext(ctx)

	pristine, current, err := readSnapshots(c.PristinePath, c.CurrentPath)
	if err != nil {
		return err
	}

	res, err := reconcile.Reconcile(pristine, current, resolveConfig(flags))
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	for i, batch := range res.Batches {
		u.Out().Printf("=== batch %d (%d requests) ===", i, len(batch))
		for _, rec := range batch {
			u.Diff(diffCategory(rec.Op), describeRecord(rec))
		}
	}
	for _, w := range res.Warnings {
		u.Warn("%s: %s", w.NodePath, w.Msg)
	}
	return nil
}

func diffCategory(op reqgen.OpKind) string {
	name := op.String()
	switch {
	case strings.HasPrefix(name, "Insert"), strings.HasPrefix(name, "Create"), name == "AddTab":
		return "Added"
	case strings.HasPrefix(name, "Delete"):
		return "Deleted"
	default:
		return "Modified"
	}
}

func describeRecord(rec *reqgen.Record) string {
	switch rec.Op {
	case reqgen.OpInsertText:
		return fmt.Sprintf("insert %q at %d", rec.Text, rec.Location.Index)
	case reqgen.OpDeleteRange:
		return fmt.Sprintf("delete [%d,%d)", rec.Range.Start, rec.Range.End)
	case reqgen.OpCreateHeader:
		return fmt.Sprintf("create header (%s)", rec.HeaderKind)
	case reqgen.OpCreateFooter:
		return fmt.Sprintf("create footer (%s)", rec.FooterKind)
	case reqgen.OpCreateFootnote:
		return fmt.Sprintf("create footnote at %d (ref %s)", rec.Location.Index, rec.FootnoteRef)
	case reqgen.OpInsertTableRow:
		if !rec.Below {
			return fmt.Sprintf("insert table row before %d", rec.RowRef)
		}
		return fmt.Sprintf("insert table row after %d", rec.RowRef)
	case reqgen.OpDeleteTableRow:
		return fmt.Sprintf("delete table row %d", rec.RowRef)
	case reqgen.OpAddTab:
		return fmt.Sprintf("add tab at position %d", rec.TabInsertionIndex)
	case reqgen.OpDeleteTab:
		return "delete tab"
	default:
		return rec.Op.String()
	}
}
