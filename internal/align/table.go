package align

// RowPair is one aligned table row entry, mirroring Pair's shape but for
// blocktree.TableRow.
type RowPair struct {
	Op             Op
	PristineIndex  int // -1 if none
	CurrentIndex   int // -1 if none
}

// AlignByID aligns two ordered lists of ids (row ids or column ids) using a
// generic LCS over the ids, falling back to positional pairing when LCS
// finds zero matches (spec.md §4.3: "when LCS yields zero matches, e.g.
// complete row replacement, pair by index so the result always has at
// least one matched anchor when both sides are non-empty"). Duplicate ids
// within one side get no separate handling: the LCS pairs equal ids left
// to right.
func AlignByID(pristineIDs, currentIDs []string) []RowPair {
	lcs := longestCommonSubsequence(pristineIDs, currentIDs)

	if len(lcs) == 0 && len(pristineIDs) > 0 && len(currentIDs) > 0 {
		return positionalFallback(pristineIDs, currentIDs)
	}

	pristineMatched := make([]bool, len(pristineIDs))
	currentMatched := make([]bool, len(currentIDs))
	for _, m := range lcs {
		pristineMatched[m.pristine] = true
		currentMatched[m.current] = true
	}

	var pairs []RowPair
	pi, ci := 0, 0
	lcsIdx := 0
	for pi < len(pristineIDs) || ci < len(currentIDs) {
		if lcsIdx < len(lcs) && pi == lcs[lcsIdx].pristine && ci == lcs[lcsIdx].current {
			pairs = append(pairs, RowPair{Op: Unchanged, PristineIndex: pi, CurrentIndex: ci})
			pi++
			ci++
			lcsIdx++
			continue
		}
		// Emit deletions for pristine entries not yet reached by the next
		// LCS anchor, then insertions for current entries, so that ids
		// appearing on only one side surface as Deleted/Added rather than
		// spuriously paired.
		nextPristineAnchor := len(pristineIDs)
		nextCurrentAnchor := len(currentIDs)
		if lcsIdx < len(lcs) {
			nextPristineAnchor = lcs[lcsIdx].pristine
			nextCurrentAnchor = lcs[lcsIdx].current
		}
		if pi < nextPristineAnchor {
			pairs = append(pairs, RowPair{Op: Deleted, PristineIndex: pi, CurrentIndex: -1})
			pi++
			continue
		}
		if ci < nextCurrentAnchor {
			pairs = append(pairs, RowPair{Op: Added, PristineIndex: -1, CurrentIndex: ci})
			ci++
			continue
		}
		break
	}
	return pairs
}

type lcsMatch struct {
	pristine, current int
}

// longestCommonSubsequence returns index pairs (i,j) such that a[i]==b[j]
// for an LCS of a and b, in increasing order of both indices. Standard
// O(n*m) DP; table sizes here are row/column counts, always small.
func longestCommonSubsequence(a, b []string) []lcsMatch {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}

	var matches []lcsMatch
	i, j := 0, 0
	for i < n && j < m {
		if a[i] == b[j] {
			matches = append(matches, lcsMatch{pristine: i, current: j})
			i++
			j++
		} else if dp[i+1][j] >= dp[i][j+1] {
			i++
		} else {
			j++
		}
	}
	return matches
}

// positionalFallback pairs entries by index when LCS found no anchor at
// all, so a complete row/column replacement still yields at least one
// matched (Modified, generally) pair rather than an all-delete-all-add
// result indistinguishable from an unrelated table.
func positionalFallback(pristineIDs, currentIDs []string) []RowPair {
	var pairs []RowPair
	n := len(pristineIDs)
	if len(currentIDs) < n {
		n = len(currentIDs)
	}
	for k := 0; k < n; k++ {
		op := Modified
		if pristineIDs[k] == currentIDs[k] {
			op = Unchanged
		}
		pairs = append(pairs, RowPair{Op: op, PristineIndex: k, CurrentIndex: k})
	}
	for k := n; k < len(pristineIDs); k++ {
		pairs = append(pairs, RowPair{Op: Deleted, PristineIndex: k, CurrentIndex: -1})
	}
	for k := n; k < len(currentIDs); k++ {
		pairs = append(pairs, RowPair{Op: Added, PristineIndex: -1, CurrentIndex: k})
	}
	return pairs
}
