package board

import "github.com/darasahq/ubao/core"

// IsDuplicate reports whether candidate matches an existing question once
// both are normalized. Deleted questions do not count: re-asking a question
// the TA removed is legitimate.
//
// This is a client-side, best-effort check over the locally cached set. Two
// clients racing the same text past it is resolved server-side; its job is
// immediate feedback for the common single-client case.
func IsDuplicate(candidate string, existing []Question) bool {
	normalized := core.NormalizeText(candidate)
	if normalized == "" {
		return false
	}
	for i := range existing {
		q := &existing[i]
		if q.IsDeleted() {
			continue
		}
		if core.NormalizeText(q.Text) == normalized {
			return true
		}
	}
	return false
}
