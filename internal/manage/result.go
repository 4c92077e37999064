// Package manage holds the reconciliation core: resource discovery,
// attribute reads with the documented OEM fallback, desired-vs-current
// diffing, and the partial update that applies only what differs.
package manage

// Result is the outcome of one reconciliation: whether the controller was
// written to, and the advisory message for the caller.
type Result struct {
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
}

// Target is a resolved attribute resource. Fallback, when set, is the
// OEM-namespaced variant tried exactly once if Primary answers 404.
type Target struct {
	Name     string
	Primary  string
	Fallback string
}
