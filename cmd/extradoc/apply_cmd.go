package main

import (
	"context"
	"fmt"

	"github.com/extradoc/extradoc/internal/auth"
	"github.com/extradoc/extradoc/internal/deferredid"
	"github.com/extradoc/extradoc/internal/reconcile"
	"github.com/extradoc/extradoc/internal/reqgen"
	"github.com/extradoc/extradoc/internal/ui"
	docsapi "google.golang.org/api/docs/v1"
)

// ApplyCmd reconciles two snapshots and executes the resulting batch plan
// against a live document, for manual smoke-testing (spec.md §1 excludes
// the transport itself from the engine's scope; this command is the
// external collaborator spec.md assumes exists).
type ApplyCmd struct {
	DocID        string `arg:"" name:"docId" help:"Google Docs document id to apply the batch plan to"`
	PristinePath string `arg:"" name:"pristine" help:"Path to the pristine XML snapshot" type:"existingfile"`
	CurrentPath  string `arg:"" name:"current" help:"Path to the current XML snapshot" type:"existingfile"`
}

func (c *ApplyCmd) Run(ctx context.Context, flags *RootFlags) error {
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

	if flags.DryRun {
		u.Out().Printf("dry-run\t%d batches planned, nothing applied", len(res.Batches))
		return nil
	}

	account, err := loadAccount(flags)
	if err != nil {
		return err
	}
	docsSvc, err := auth.NewDocsService(ctx, account)
	if err != nil {
		return err
	}

	applier := func(ctx context.Context, records []*reqgen.Record) (deferredid.BatchReply, error) {
		return executeBatch(ctx, docsSvc, c.DocID, records, u)
	}
	replies, err := deferredid.ApplyAndResolve(ctx, res.Batches, applier)
	if err != nil {
		return err
	}
	for i, reply := range replies {
		u.Out().Printf("batch[%d]\tapplied\t%d requests", i, len(reply.Replies))
	}
	return nil
}

// executeBatch submits one already-resolved batch to the Docs API in a
// single call and maps the response back into a BatchReply keyed by the
// same response_path strings internal/reconcile used when it planted each
// record's placeholder. The retry loop around transient failures lives in
// deferredid.ApplyAndResolve, which calls this as its BatchExecutor.
func executeBatch(ctx context.Context, docsSvc *docsapi.Service, docID string, records []*reqgen.Record, u *ui.UI) (deferredid.BatchReply, error) {
	requests := make([]*docsapi.Request, 0, len(records))
	sendable := make([]bool, len(records))
	for i, rec := range records {
		req, convErr := rec.ToRequest()
		if convErr != nil {
			u.Warn("skipping %s: %v", rec.Op, convErr)
			continue
		}
		sendable[i] = true
		requests = append(requests, req)
	}

	resp, err := docsSvc.Documents.BatchUpdate(docID, &docsapi.BatchUpdateDocumentRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		return deferredid.BatchReply{}, err
	}

	reply := deferredid.BatchReply{Replies: make([]deferredid.Reply, len(records))}
	respIdx := 0
	for i, ok := range sendable {
		if !ok {
			continue
		}
		if resp != nil && respIdx < len(resp.Replies) {
			reply.Replies[i] = deferredid.Reply{Fields: replyFields(records[i].Op, resp.Replies[respIdx])}
		}
		respIdx++
	}
	return reply, nil
}

// replyFields extracts the response_path fields internal/reconcile's
// deferred placeholders reference ("header.headerId", "footer.footerId",
// "createFootnote.footnoteId") from one request's response.
func replyFields(op reqgen.OpKind, resp *docsapi.Response) map[string]string {
	if resp == nil {
		return nil
	}
	switch op {
	case reqgen.OpCreateHeader:
		if resp.CreateHeader != nil {
			return map[string]string{"header.headerId": resp.CreateHeader.HeaderId}
		}
	case reqgen.OpCreateFooter:
		if resp.CreateFooter != nil {
			return map[string]string{"footer.footerId": resp.CreateFooter.FooterId}
		}
	case reqgen.OpCreateFootnote:
		if resp.CreateFootnote != nil {
			return map[string]string{"createFootnote.footnoteId": resp.CreateFootnote.FootnoteId}
		}
	}
	return nil
}
