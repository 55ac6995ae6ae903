package errs

import (
	"sort"
	"strings"
)

// Problems accumulates named failures so a caller sees every problem in one
// response instead of the first one only. The zero value is ready to use.
type Problems struct {
	entries []problem
}

type problem struct {
	key string
	err error
}

// Add records err under key. Nil errors are ignored so checks can be chained.
func (p *Problems) Add(key string, err error) *Problems {
	if err != nil {
		p.entries = append(p.entries, problem{key: key, err: err})
	}
	return p
}

func (p *Problems) Empty() bool {
	return len(p.entries) == 0
}

// Err returns nil when nothing was recorded.
func (p *Problems) Err() error {
	if p.Empty() {
		return nil
	}
	entries := make([]problem, len(p.entries))
	copy(entries, p.entries)
	return &ProblemsError{entries: entries}
}

// ProblemsError is the error form of Problems.
type ProblemsError struct {
	entries []problem
}

func (e *ProblemsError) Error() string {
	parts := make([]string, 0, len(e.entries))
	for _, entry := range e.entries {
		parts = append(parts, entry.key+": "+entry.err.Error())
	}
	return strings.Join(parts, "; ")
}

func (e *ProblemsError) Unwrap() []error {
	out := make([]error, 0, len(e.entries))
	for _, entry := range e.entries {
		out = append(out, entry.err)
	}
	return out
}

// Fields maps each key to its message. Repeated keys keep the first message.
func (e *ProblemsError) Fields() map[string]string {
	out := make(map[string]string, len(e.entries))
	for _, entry := range e.entries {
		if _, ok := out[entry.key]; !ok {
			out[entry.key] = entry.err.Error()
		}
	}
	return out
}

// Keys returns the recorded keys in sorted order.
func (e *ProblemsError) Keys() []string {
	fields := e.Fields()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
