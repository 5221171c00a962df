package commands

import (
	"context"
	"fmt"
	"strings"
)

// handlerFunc is one command recipe. params are the mention-stripped message
// tokens, params[0] being the verb itself.
type handlerFunc func(ctx context.Context, ev Event, params []string) error

// UnknownCommandError reports a verb with no entry in the command table.
type UnknownCommandError struct {
	Verb string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Verb)
}

// registry returns the fixed command table. Compound commands are keyed by
// their internal underscore-joined name; chat text reaches them only through
// normalizeVerb, never by naming the internal key directly.
func (r *Router) registry() map[string]handlerFunc {
	return map[string]handlerFunc{
		"hello":           r.hello,
		"job_last":        r.jobLast,
		"job_retry":       r.jobRetry,
		"pipeline_create": r.pipelineCreate,
	}
}

// resolve maps a chat-visible verb to its handler. The external separators
// ":" and "-" are converted to the internal joiner; a raw "_" in chat text is
// rejected so the internal names cannot be invoked directly.
func (r *Router) resolve(verb string) (handlerFunc, error) {
	key, ok := normalizeVerb(verb)
	if !ok {
		return nil, &UnknownCommandError{Verb: verb}
	}
	handler, ok := r.handlers[key]
	if !ok {
		return nil, &UnknownCommandError{Verb: verb}
	}
	return handler, nil
}

func normalizeVerb(verb string) (string, bool) {
	if verb == "" || strings.ContainsRune(verb, '_') {
		return "", false
	}
	key := strings.NewReplacer(":", "_", "-", "_").Replace(verb)
	return key, true
}
