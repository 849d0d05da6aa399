package access

import (
	"slices"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Rule is an expr-lang expression deciding whether a module is visible.
type Rule struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

func (r *Rule) Exec(env map[string]any) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, errors.WithStack(err)
	}

	allowed, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return allowed, nil
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.AsBool(), WithRuleAPI())
		if err != nil {
			r.compileErr = errors.Wrapf(err, "could not compile rule '%s'", r.script)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Rule) String() string {
	return r.script
}

func NewRule(script string) *Rule {
	return &Rule{script: script}
}

// WithRuleAPI exposes the helpers available to access rules.
func WithRuleAPI() expr.Option {
	return expr.Function(
		"hasRole",
		func(params ...any) (any, error) {
			roles, ok := params[0].([]string)
			if !ok {
				return false, errors.Errorf("unexpected roles type '%T'", params[0])
			}

			role, ok := params[1].(string)
			if !ok {
				return false, errors.Errorf("unexpected role type '%T'", params[1])
			}

			return slices.Contains(roles, role), nil
		},
		new(func([]string, string) bool),
	)
}
