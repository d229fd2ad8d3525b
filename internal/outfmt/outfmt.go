// Package outfmt reconstructs the teacher's --json output switch
// (outfmt.IsJSON(ctx), outfmt.WriteJSON(ctx, w, v)), referenced throughout
// docs_sed_helpers.go/docs_edit.go but not itself in the retrieved pack.
package outfmt

import (
	"context"
	"encoding/json"
	"io"
)

type ctxKey struct{}

// WithJSON records whether --json was passed, for IsJSON to read back.
func WithJSON(ctx context.Context, json bool) context.Context {
	return context.WithValue(ctx, ctxKey{}, json)
}

// IsJSON reports whether the current command should emit JSON instead of
// the tab-separated plain format.
func IsJSON(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKey{}).(bool)
	return v
}

// WriteJSON writes v to w as indented JSON, matching the teacher's
// status/docId/replaced result-object shape.
func WriteJSON(_ context.Context, w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
