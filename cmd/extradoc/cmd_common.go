package main

import "github.com/extradoc/extradoc/internal/reconcile"

// resolveConfig builds a reconcile.Config directly from the root flags,
// which carry reconcile.DefaultConfig's values as their kong defaults.
func resolveConfig(flags *RootFlags) reconcile.Config {
	return reconcile.Config{
		PreserveListIdentity: flags.PreserveListIdentity,
		StrictSectionBreaks:  flags.StrictSectionBreaks,
		HorizontalRulePolicy: flags.HorizontalRulePolicy,
		MaxBatches:           flags.MaxBatches,
	}
}
