// Package reconcile is the top-level orchestrator (spec.md §6): a pure
// function from (pristine XML, current XML, config) to an ordered list of
// batches plus warnings, or a typed error. It wires together the Index
// Model, Block Tree Builder, Aligner, Change Tree Builder, Backwards Walk,
// Request Generators, Style Differ, and Deferred-ID Resolver; it holds no
// state of its own beyond one call's call-scoped deferredid.Planner.
package reconcile

// Config carries the four options spec.md §6 recognizes, with JSON and
// YAML tags; internal/config reads the YAML form from an on-disk file.
type Config struct {
	PreserveListIdentity bool   `json:"preserve_list_identity" yaml:"preserve_list_identity"`
	StrictSectionBreaks  bool   `json:"strict_section_breaks" yaml:"strict_section_breaks"`
	HorizontalRulePolicy string `json:"horizontal_rule_policy" yaml:"horizontal_rule_policy"`
	MaxBatches           int    `json:"max_batches" yaml:"max_batches"`
}

const (
	HorizontalRuleSkip  = "skip"
	HorizontalRuleError = "error"
)

// DefaultConfig matches spec.md §6's stated defaults.
func DefaultConfig() Config {
	return Config{
		PreserveListIdentity: true,
		StrictSectionBreaks:  true,
		HorizontalRulePolicy: HorizontalRuleSkip,
		MaxBatches:           32,
	}
}
