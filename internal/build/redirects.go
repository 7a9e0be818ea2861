package build

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nicolasmendonca/raptor-redux/internal/model"
)

var (
	ErrInvalidRedirect   = errors.New("invalid redirect")
	ErrDuplicateRedirect = errors.New("duplicate redirect")
)

// RedirectTable collects the redirects registered during one build.
// It is safe for concurrent use.
type RedirectTable struct {
	mu     sync.Mutex
	rules  []model.RedirectRule
	byFrom map[string]int
}

func NewRedirectTable() *RedirectTable {
	return &RedirectTable{byFrom: make(map[string]int)}
}

// CreateRedirect implements Actions.
func (t *RedirectTable) CreateRedirect(ctx context.Context, rule model.RedirectRule) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRule(rule); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := normalizePath(rule.FromPath)
	if _, exists := t.byFrom[key]; exists {
		return fmt.Errorf("%w: %s is already redirected", ErrDuplicateRedirect, rule.FromPath)
	}
	t.byFrom[key] = len(t.rules)
	t.rules = append(t.rules, rule)
	return nil
}

// Rules returns the registered rules in registration order.
func (t *RedirectTable) Rules() []model.RedirectRule {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.RedirectRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Lookup finds the rule registered for path. "/slides" and "/slides/" match
// the same rule.
func (t *RedirectTable) Lookup(path string) (model.RedirectRule, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byFrom[normalizePath(path)]
	if !ok {
		return model.RedirectRule{}, false
	}
	return t.rules[i], true
}

func (t *RedirectTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rules)
}

func validateRule(rule model.RedirectRule) error {
	for _, p := range []string{rule.FromPath, rule.ToPath} {
		if p == "" {
			return fmt.Errorf("%w: empty path", ErrInvalidRedirect)
		}
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: path %q is not site-relative", ErrInvalidRedirect, p)
		}
	}
	if normalizePath(rule.FromPath) == normalizePath(rule.ToPath) {
		return fmt.Errorf("%w: %s redirects to itself", ErrInvalidRedirect, rule.FromPath)
	}
	return nil
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
