// Package deferredid implements the Deferred-ID Resolver (spec.md §4.7):
// a call-local placeholder namespace for server-assigned ids (tabs,
// headers, footers, footnotes) created and referenced within the same
// reconcile call, before any network round-trip has happened.
package deferredid

import (
	"fmt"

	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/rerr"
)

// Planner accumulates an ordered list of batches for one reconcile call.
// It is call-scoped: a fresh Planner is created per reconcile invocation,
// never shared across calls (spec.md §5 "no shared mutable state; no
// globals").
type Planner struct {
	batches [][]*reqgen.Record
}

func NewPlanner() *Planner {
	return &Planner{}
}

// OpenBatch starts a new batch and returns its index. Batches are numbered
// by DFS discovery order (spec.md §4.7): a new segment opens a new batch
// at depth+1, so callers call OpenBatch once per newly discovered segment
// that needs deferred population.
func (p *Planner) OpenBatch() int {
	p.batches = append(p.batches, nil)
	return len(p.batches) - 1
}

// Append adds a record to batchIndex and returns its
// request_index_within_batch — a count local to that batch only, not a
// running global counter (spec.md §9 calls out the source's global
// counter as a real bug to avoid repeating here).
func (p *Planner) Append(batchIndex int, r *reqgen.Record) int {
	p.batches[batchIndex] = append(p.batches[batchIndex], r)
	return len(p.batches[batchIndex]) - 1
}

// AppendAll appends a slice of records to batchIndex in order, returning
// nothing: callers needing placeholders for specific records should call
// Append individually so they get the right request_index_within_batch.
func (p *Planner) AppendAll(batchIndex int, records []*reqgen.Record) {
	for _, r := range records {
		p.Append(batchIndex, r)
	}
}

// Batches returns the accumulated batches in order.
func (p *Planner) Batches() [][]*reqgen.Record {
	return p.batches
}

// Placeholder builds a reqgen.ID referencing a not-yet-executed request's
// response, for embedding into a later batch's segment/tab id field.
func Placeholder(batchIndex, requestIndex int, responsePath string) reqgen.ID {
	return reqgen.ID{Placeholder: &reqgen.Placeholder{
		BatchIndex:              batchIndex,
		RequestIndexWithinBatch: requestIndex,
		ResponsePath:            responsePath,
	}}
}

// Reply is one request's response fields, keyed by response_path (e.g.
// "header.headerId").
type Reply struct {
	Fields map[string]string
}

// BatchReply is the collected replies for one already-executed batch.
type BatchReply struct {
	Replies []Reply
}

// Resolve replaces every placeholder in batch's records with the literal
// id found in priorResponses, returning a new batch safe to execute.
// DeferredResolutionFailed is returned for any placeholder whose
// (batch_index, request_index_within_batch, response_path) doesn't
// resolve — a missing reply or wrong path is fatal for the batch
// (spec.md §7).
func Resolve(batch []*reqgen.Record, priorResponses []BatchReply) ([]*reqgen.Record, error) {
	resolved := make([]*reqgen.Record, len(batch))
	for i, r := range batch {
		nr := *r
		if r.Location != nil {
			loc := *r.Location
			if err := resolveID(&loc.SegmentID, priorResponses); err != nil {
				return nil, err
			}
			if err := resolveID(&loc.TabID, priorResponses); err != nil {
				return nil, err
			}
			nr.Location = &loc
		}
		if r.Range != nil {
			rng := *r.Range
			if err := resolveID(&rng.SegmentID, priorResponses); err != nil {
				return nil, err
			}
			if err := resolveID(&rng.TabID, priorResponses); err != nil {
				return nil, err
			}
			nr.Range = &rng
		}
		resolved[i] = &nr
	}
	return resolved, nil
}

func resolveID(id *reqgen.ID, priorResponses []BatchReply) error {
	if id.Placeholder == nil {
		return nil
	}
	p := id.Placeholder
	path := fmt.Sprintf("batch[%d].reply[%d].%s", p.BatchIndex, p.RequestIndexWithinBatch, p.ResponsePath)

	if p.BatchIndex < 0 || p.BatchIndex >= len(priorResponses) {
		return rerr.New(rerr.DeferredResolutionFailed, path, "referenced batch has not been executed")
	}
	reply := priorResponses[p.BatchIndex]
	if p.RequestIndexWithinBatch < 0 || p.RequestIndexWithinBatch >= len(reply.Replies) {
		return rerr.New(rerr.DeferredResolutionFailed, path, "referenced request has no reply in that batch")
	}
	val, ok := reply.Replies[p.RequestIndexWithinBatch].Fields[p.ResponsePath]
	if !ok {
		return rerr.New(rerr.DeferredResolutionFailed, path, "response_path not present in reply")
	}
	id.Literal = val
	id.Placeholder = nil
	return nil
}
