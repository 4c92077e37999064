package manage

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidCommandError reports every requested command that is not in the
// category allow-list. Nothing executes when it fires.
type InvalidCommandError struct {
	Offenders []string
	Allowed   []string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("Invalid Command(s): %v. Allowed Commands = %v", e.Offenders, e.Allowed)
}

// ResourceNotFoundError reports a discovery response missing an expected
// linkage key. The raw body is kept for diagnosis.
type ResourceNotFoundError struct {
	Key  string
	URI  string
	Body []byte
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("Key %q not found in %s response: %s", e.Key, e.URI, e.Body)
}

// UpstreamRequestError reports a non-success status while reading state.
type UpstreamRequestError struct {
	Method string
	URI    string
	Status int
	Body   []byte
}

func (e *UpstreamRequestError) Error() string {
	return fmt.Sprintf("%s on %s Failed, Status: %d, Response: %s", e.Method, e.URI, e.Status, e.Body)
}

// InvalidAttributeError reports every requested attribute name absent from
// the target resource, not just the first.
type InvalidAttributeError struct {
	Offenders map[string]any
}

func (e *InvalidAttributeError) Error() string {
	names := make([]string, 0, len(e.Offenders))
	for name := range e.Offenders {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %v", name, e.Offenders[name]))
	}
	return fmt.Sprintf("Incorrect attributes: {%s}", strings.Join(parts, ", "))
}

// UpstreamApplyError reports a non-success status writing the update.
type UpstreamApplyError struct {
	URI    string
	Status int
	Body   []byte
}

func (e *UpstreamApplyError) Error() string {
	return fmt.Sprintf("Applying attributes Failed, Status: %d, Response: %s, API: %s", e.Status, e.Body, e.URI)
}
