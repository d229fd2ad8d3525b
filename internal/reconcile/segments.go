package reconcile

import (
	"sort"

	"github.com/extradoc/extradoc/internal/blocktree"
	"github.com/extradoc/extradoc/internal/changetree"
	"github.com/extradoc/extradoc/internal/deferredid"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/walk"
)

// Warning mirrors changetree.Warning through the whole pipeline so a
// caller never needs to import internal/changetree directly.
type Warning = changetree.Warning

// diffSegment diffs one already-matched segment (same id on both sides)
// and returns its records directly; callers decide which batch to file
// them in.
func diffSegment(pristine, current *blocktree.Segment, segmentID, tabID reqgen.ID, opts walk.Options, path string) ([]*reqgen.Record, []Warning, error) {
	nodes, warnings, err := changetree.BuildSegment(pristine.Blocks, current.Blocks, pristine.SegmentEnd, path)
	if err != nil {
		return nil, nil, err
	}
	records, walkWarnings, err := walk.WalkSegment(nodes, pristine.SegmentEnd, segmentID, tabID, opts)
	if err != nil {
		return nil, nil, err
	}
	return records, append(warnings, walkWarnings...), nil
}

// diffTab diffs one matched tab (body, headers, footers, footnotes) and
// files every resulting record into the planner itself: a newly created
// header or footer opens its own population batch, so this cannot simply
// return one flat record slice for the caller to append.
func diffTab(pTab, cTab *blocktree.Tab, tabID reqgen.ID, opts walk.Options, planner *deferredid.Planner, batch int) ([]Warning, error) {
	var warnings []Warning

	pristineFootnoteIDs := make(map[string]bool, len(pTab.Footnotes))
	for _, f := range pTab.Footnotes {
		pristineFootnoteIDs[f.ID] = true
	}
	newFootnoteIDs := make(map[string]bool)
	currentFootnoteByID := make(map[string]*blocktree.Segment, len(cTab.Footnotes))
	for _, f := range cTab.Footnotes {
		currentFootnoteByID[f.ID] = f
		if !pristineFootnoteIDs[f.ID] {
			newFootnoteIDs[f.ID] = true
		}
	}

	bodyOpts := opts
	bodyOpts.NewFootnoteIDs = newFootnoteIDs

	bodyRecords, bodyWarnings, err := diffSegment(pTab.Body, cTab.Body, tabID, tabID, bodyOpts, "tab["+pTab.ID+"].body")
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, bodyWarnings...)

	// File body records one at a time (not AppendAll) so a CreateFootnote
	// mixed in among them can be immediately keyed to the batch index its
	// response will land at, and used to open the footnote's own
	// population batch (spec.md §4.7, S6).
	for _, rec := range bodyRecords {
		idx := planner.Append(batch, rec)
		if rec.Op != reqgen.OpCreateFootnote || rec.FootnoteRef == "" {
			continue
		}
		fn, ok := currentFootnoteByID[rec.FootnoteRef]
		if !ok {
			continue
		}
		segID := deferredid.Placeholder(batch, idx, "createFootnote.footnoteId")
		popBatch := planner.OpenBatch()
		frecs, fwarn, err := deferredid.PopulateNewSegment(fn.Blocks, segID, tabID, opts)
		if err != nil {
			return nil, err
		}
		planner.AppendAll(popBatch, frecs)
		warnings = append(warnings, fwarn...)
	}

	// Footnotes whose reference survived unchanged but whose body content
	// was edited directly: diffed in place, literal id on both sides.
	for _, pf := range pTab.Footnotes {
		cf, ok := currentFootnoteByID[pf.ID]
		if !ok {
			continue
		}
		recs, fwarn, err := diffSegment(pf, cf, reqgen.Literal(pf.ID), tabID, opts, "tab["+pTab.ID+"].footnote["+pf.ID+"]")
		if err != nil {
			return nil, err
		}
		planner.AppendAll(batch, recs)
		warnings = append(warnings, fwarn...)
	}

	hwarn, err := diffSegmentSet(pTab.Headers, cTab.Headers, kindHeader, tabID, opts, planner, batch, "tab["+pTab.ID+"]")
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, hwarn...)

	fwarn, err := diffSegmentSet(pTab.Footers, cTab.Footers, kindFooter, tabID, opts, planner, batch, "tab["+pTab.ID+"]")
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, fwarn...)

	return warnings, nil
}

type segmentSetKind int

const (
	kindHeader segmentSetKind = iota
	kindFooter
)

// diffSegmentSet aligns two sets of header or footer segments by id and
// handles all three outcomes: matched (diff in place), pristine-only
// (delete), current-only (create then populate in a follow-on batch).
// Ids are visited in sorted order for deterministic batch assignment
// across runs of the same inputs (spec.md §4.7, §8 determinism).
func diffSegmentSet(pristine, current []*blocktree.Segment, kind segmentSetKind, tabID reqgen.ID, opts walk.Options, planner *deferredid.Planner, batch int, path string) ([]Warning, error) {
	pByID := make(map[string]*blocktree.Segment, len(pristine))
	for _, s := range pristine {
		pByID[s.ID] = s
	}
	cByID := make(map[string]*blocktree.Segment, len(current))
	for _, s := range current {
		cByID[s.ID] = s
	}

	ids := make(map[string]bool, len(pristine)+len(current))
	for id := range pByID {
		ids[id] = true
	}
	for id := range cByID {
		ids[id] = true
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var warnings []Warning
	for _, id := range sorted {
		p, inP := pByID[id]
		c, inC := cByID[id]

		switch {
		case inP && inC:
			recs, warns, err := diffSegment(p, c, reqgen.Literal(id), tabID, opts, path+"."+segmentSetLabel(kind)+"["+id+"]")
			if err != nil {
				return nil, err
			}
			planner.AppendAll(batch, recs)
			warnings = append(warnings, warns...)

		case inP && !inC:
			if kind == kindHeader {
				planner.Append(batch, reqgen.DeleteHeader(reqgen.Literal(id)))
			} else {
				planner.Append(batch, reqgen.DeleteFooter(reqgen.Literal(id)))
			}

		case !inP && inC:
			var createRec *reqgen.Record
			var responsePath string
			if kind == kindHeader {
				createRec = reqgen.CreateHeader(styleKindOrDefault(c.StyleKind), &reqgen.Location{TabID: tabID})
				responsePath = "header.headerId"
			} else {
				createRec = reqgen.CreateFooter(styleKindOrDefault(c.StyleKind), &reqgen.Location{TabID: tabID})
				responsePath = "footer.footerId"
			}
			idx := planner.Append(batch, createRec)
			segID := deferredid.Placeholder(batch, idx, responsePath)
			popBatch := planner.OpenBatch()
			recs, warns, err := deferredid.PopulateNewSegment(c.Blocks, segID, tabID, opts)
			if err != nil {
				return nil, err
			}
			planner.AppendAll(popBatch, recs)
			warnings = append(warnings, warns...)
		}
	}
	return warnings, nil
}

func segmentSetLabel(kind segmentSetKind) string {
	if kind == kindHeader {
		return "header"
	}
	return "footer"
}

func styleKindOrDefault(k string) string {
	if k == "" {
		return "DEFAULT"
	}
	return k
}

// populateNewTab fills a just-created tab's body, then its headers and
// footers, mirroring diffSegmentSet's create-then-populate shape for a
// whole tab rather than one header/footer. tabID is still a placeholder
// at this point; it threads through unresolved until the AddTab batch it
// depends on executes.
func populateNewTab(tab *blocktree.Tab, tabID reqgen.ID, opts walk.Options, planner *deferredid.Planner, batch int) ([]Warning, error) {
	var warnings []Warning

	bodyRecs, bodyWarn, err := deferredid.PopulateNewSegment(tab.Body.Blocks, tabID, tabID, opts)
	if err != nil {
		return nil, err
	}
	planner.AppendAll(batch, bodyRecs)
	warnings = append(warnings, bodyWarn...)

	for _, h := range tab.Headers {
		idx := planner.Append(batch, reqgen.CreateHeader(styleKindOrDefault(h.StyleKind), &reqgen.Location{TabID: tabID}))
		segID := deferredid.Placeholder(batch, idx, "header.headerId")
		popBatch := planner.OpenBatch()
		recs, warns, err := deferredid.PopulateNewSegment(h.Blocks, segID, tabID, opts)
		if err != nil {
			return nil, err
		}
		planner.AppendAll(popBatch, recs)
		warnings = append(warnings, warns...)
	}

	for _, f := range tab.Footers {
		idx := planner.Append(batch, reqgen.CreateFooter(styleKindOrDefault(f.StyleKind), &reqgen.Location{TabID: tabID}))
		segID := deferredid.Placeholder(batch, idx, "footer.footerId")
		popBatch := planner.OpenBatch()
		recs, warns, err := deferredid.PopulateNewSegment(f.Blocks, segID, tabID, opts)
		if err != nil {
			return nil, err
		}
		planner.AppendAll(popBatch, recs)
		warnings = append(warnings, warns...)
	}

	return warnings, nil
}
