// Package filter compiles user-defined protection expressions with the
// expr language. A torrent matching the configured expression is never
// considered for removal.
//
// Expressions see the torrent's fields and a few helpers:
//
//	Name, Category, Tags, State, Tracker, Private,
//	Progress (percent), Ratio, Size, NumSeeds, AgeHours, InactiveHours
//	hasTag("keep"), nameContains("linux")
package filter

import (
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// Filter is a compiled protection expression.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a Filter. The expression must
// evaluate to a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(baseEnv()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{
		expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the filter against a torrent snapshot.
func (f *Filter) Match(t *qbittorrent.Torrent, now time.Time) (bool, error) {
	result, err := expr.Run(f.program, envFor(t, now))
	if err != nil {
		return false, &EvaluationError{
			Expression:  f.expression,
			TorrentName: t.Name,
			Reason:      "failed to evaluate expression",
			Err:         err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression:  f.expression,
			TorrentName: t.Name,
			Reason:      "expression did not return a boolean",
		}
	}

	return matched, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

func baseEnv() map[string]any {
	return envFor(&qbittorrent.Torrent{}, time.Time{})
}

func envFor(t *qbittorrent.Torrent, now time.Time) map[string]any {
	return map[string]any{
		"Name":          t.Name,
		"Category":      t.Category,
		"Tags":          t.Tags,
		"State":         string(t.State),
		"Tracker":       t.Tracker,
		"Private":       t.Private,
		"Progress":      t.Progress * 100,
		"Ratio":         t.Ratio,
		"Size":          t.Size,
		"NumSeeds":      t.NumSeeds,
		"AgeHours":      t.Age(now).Hours(),
		"InactiveHours": t.Inactive(now).Hours(),
		"hasTag": func(tag string) bool {
			for _, have := range t.Tags {
				if strings.EqualFold(have, tag) {
					return true
				}
			}
			return false
		},
		"nameContains": func(s string) bool {
			return strings.Contains(strings.ToLower(t.Name), strings.ToLower(s))
		},
	}
}
