// Package reconcile is the top-level orchestrator (spec.md §6): a pure
// function from (pristine XML, current XML, config) to an ordered list of
// batches plus warnings, or a typed error. It wires together the Index
// Model, Block Tree Builder, Aligner, Change Tree Builder, Backwards Walk,
// Request Generators, and Deferred-ID Resolver (the Style Differ in
// internal/styledelta is not called); it holds no state of its own beyond
// one call's call-scoped deferredid.Planner.
package reconcile

import (
	"github.com/extradoc/extradoc/internal/align"
	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/deferredid"
	"github.com/extradoc/extradoc/internal/docxml"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/rerr"
	"github.com/extradoc/extradoc/internal/walk"
)

// Result is a reconcile call's successful output: batch 0 is safe to
// execute immediately; batch N>0 may reference placeholders resolvable
// only once every batch it depends on has executed and been fed back
// through internal/deferredid.Resolve (spec.md §4.7).
type Result struct {
	Batches  [][]*reqgen.Record
	Warnings []Warning
}

// Reconcile diffs a pristine and current document snapshot and produces
// the ordered batch plan to bring the pristine document to the current
// one (spec.md §6). It never executes a network call itself; it only
// shapes requests and leaves placeholder resolution to the caller once
// real batch responses exist.
func Reconcile(pristineXML, currentXML []byte, cfg Config) (*Result, error) {
	pdoc, err := docxml.Parse(pristineXML)
	if err != nil {
		return nil, rerr.Wrap(rerr.MalformedInput, "pristine", err, "parse pristine snapshot")
	}
	cdoc, err := docxml.Parse(currentXML)
	if err != nil {
		return nil, rerr.Wrap(rerr.MalformedInput, "current", err, "parse current snapshot")
	}

	pTree, err := blocktree.Build(pdoc, true)
	if err != nil {
		return nil, err
	}
	cTree, err := blocktree.Build(cdoc, false)
	if err != nil {
		return nil, err
	}

	planner := deferredid.NewPlanner()
	batch0 := planner.OpenBatch()

	opts := walk.Options{
		PreserveListIdentity: cfg.PreserveListIdentity,
		StrictSectionBreaks:  cfg.StrictSectionBreaks,
		HorizontalRulePolicy: cfg.HorizontalRulePolicy,
	}

	var warnings []Warning

	tabPairs := align.AlignByID(tabIDs(pTree.Tabs), tabIDs(cTree.Tabs))
	for _, tp := range tabPairs {
		switch tp.Op {
		case align.Deleted:
			tab := pTree.Tabs[tp.PristineIndex]
			planner.Append(batch0, reqgen.DeleteTab(reqgen.Literal(tab.ID)))

		case align.Added:
			tab := cTree.Tabs[tp.CurrentIndex]
			idx := planner.Append(batch0, reqgen.AddTab(tp.CurrentIndex, nil))
			tabID := deferredid.Placeholder(batch0, idx, "tabId")
			popBatch := planner.OpenBatch()
			warns, err := populateNewTab(tab, tabID, opts, planner, popBatch)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, warns...)

		default: // Unchanged or Modified: matched tab, diff its segments.
			pTab := pTree.Tabs[tp.PristineIndex]
			cTab := cTree.Tabs[tp.CurrentIndex]
			warns, err := diffTab(pTab, cTab, reqgen.Literal(pTab.ID), opts, planner, batch0)
			if err != nil {
				return nil, err
			}
			warnings = append(warnings, warns...)
		}

		if cfg.MaxBatches > 0 && len(planner.Batches()) > cfg.MaxBatches {
			return nil, rerr.New(rerr.MalformedInput, "batches", "batch count exceeded max_batches")
		}
	}

	return &Result{Batches: planner.Batches(), Warnings: warnings}, nil
}

func tabIDs(tabs []*blocktree.Tab) []string {
	ids := make([]string, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	return ids
}
