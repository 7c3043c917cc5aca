package fuzzy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoActivation     = errors.New("no rule activated the output")
	ErrMissingInput     = errors.New("missing input criterion")
	ErrUnknownCriterion = errors.New("unknown criterion")
	ErrUnknownLabel     = errors.New("unknown label")
)

// Op is an antecedent node kind.
type Op int

const (
	OpIs Op = iota
	OpAnd
	OpOr
)

// Expr is a rule antecedent: a leaf test or an AND/OR over sub-expressions.
type Expr struct {
	Op        Op
	Criterion string
	Label     string
	Args      []Expr
}

func Is(criterion, label string) Expr {
	return Expr{Op: OpIs, Criterion: criterion, Label: label}
}

func And(args ...Expr) Expr { return Expr{Op: OpAnd, Args: args} }

func Or(args ...Expr) Expr { return Expr{Op: OpOr, Args: args} }

// DegreeFunc resolves the membership degree of a leaf.
type DegreeFunc func(criterion, label string) (float64, error)

// Eval computes the firing strength using min for AND and max for OR.
func (e Expr) Eval(degree DegreeFunc) (float64, error) {
	switch e.Op {
	case OpIs:
		return degree(e.Criterion, e.Label)
	case OpAnd, OpOr:
		if len(e.Args) == 0 {
			return 0, fmt.Errorf("empty %s expression", e.opName())
		}
		acc, err := e.Args[0].Eval(degree)
		if err != nil {
			return 0, err
		}
		for _, a := range e.Args[1:] {
			v, err := a.Eval(degree)
			if err != nil {
				return 0, err
			}
			if e.Op == OpAnd {
				acc = min(acc, v)
			} else {
				acc = max(acc, v)
			}
		}
		return acc, nil
	}
	return 0, fmt.Errorf("unknown expression op %d", e.Op)
}

// Leaves calls fn for every criterion/label test in the expression.
func (e Expr) Leaves(fn func(criterion, label string) error) error {
	if e.Op == OpIs {
		return fn(e.Criterion, e.Label)
	}
	for _, a := range e.Args {
		if err := a.Leaves(fn); err != nil {
			return err
		}
	}
	return nil
}

func (e Expr) opName() string {
	switch e.Op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	}
	return "IS"
}

func (e Expr) String() string {
	if e.Op == OpIs {
		return e.Criterion + "=" + e.Label
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " "+e.opName()+" ") + ")"
}

// Rule maps an antecedent to an output label.
type Rule struct {
	ID         string
	Antecedent Expr
	Consequent string
	Fallback   bool
}

func (r Rule) String() string {
	prefix := "IF"
	if r.Fallback {
		prefix = "OTHERWISE IF"
	}
	return fmt.Sprintf("%s: %s %s THEN score=%s", r.ID, prefix, r.Antecedent, r.Consequent)
}

// RuleBase is an ordered list of rules.
type RuleBase struct {
	Rules []Rule
}

// Validate rejects rules that reference criteria or labels the model does
// not define.
func (rb RuleBase) Validate(m *Model) error {
	if len(rb.Rules) == 0 {
		return errors.New("rule base is empty")
	}
	out := m.Output()
	ids := make(map[string]bool, len(rb.Rules))
	for i, r := range rb.Rules {
		name := r.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		} else if ids[r.ID] {
			return fmt.Errorf("rule %s: duplicate id", r.ID)
		}
		ids[r.ID] = true
		if _, ok := out.Set(r.Consequent); !ok {
			return fmt.Errorf("rule %s: %w: %s.%s", name, ErrUnknownLabel, out.Name, r.Consequent)
		}
		err := r.Antecedent.Leaves(func(criterion, label string) error {
			v, ok := m.Variable(criterion)
			if !ok {
				return fmt.Errorf("%w: %s", ErrUnknownCriterion, criterion)
			}
			if _, ok := v.Set(label); !ok {
				return fmt.Errorf("%w: %s.%s", ErrUnknownLabel, criterion, label)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
		if _, err := r.Antecedent.Eval(func(string, string) (float64, error) { return 0, nil }); err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
	}
	return nil
}

func (rb RuleBase) String() string {
	var b strings.Builder
	for _, r := range rb.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
