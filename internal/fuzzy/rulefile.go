// trail-recommender: fuzzy hiking-trail recommendation engine
// SPDX-License-Identifier: MIT
//
// YAML encoding of rule sets so alternate rule bases can be loaded at startup.

package fuzzy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []ruleDoc `yaml:"rules"`
}

type ruleDoc struct {
	ID       string  `yaml:"id"`
	Then     string  `yaml:"then"`
	Fallback bool    `yaml:"fallback,omitempty"`
	When     exprDoc `yaml:"when"`
}

type exprDoc struct {
	Is  string    `yaml:"is,omitempty"`
	All []exprDoc `yaml:"all,omitempty"`
	Any []exprDoc `yaml:"any,omitempty"`
}

// LoadRuleBase reads a YAML rule file. The result still needs Validate
// against a model.
func LoadRuleBase(path string) (RuleBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleBase{}, fmt.Errorf("read rule file: %w", err)
	}
	rb, err := ParseRuleBase(data)
	if err != nil {
		return RuleBase{}, fmt.Errorf("%s: %w", path, err)
	}
	return rb, nil
}

// ParseRuleBase decodes the YAML rule format.
func ParseRuleBase(data []byte) (RuleBase, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RuleBase{}, fmt.Errorf("parse rules: %w", err)
	}
	rb := RuleBase{Rules: make([]Rule, 0, len(f.Rules))}
	for i, doc := range f.Rules {
		if strings.TrimSpace(doc.Then) == "" {
			return RuleBase{}, fmt.Errorf("rule %d (%s): missing then", i+1, doc.ID)
		}
		expr, err := doc.When.toExpr()
		if err != nil {
			return RuleBase{}, fmt.Errorf("rule %d (%s): %w", i+1, doc.ID, err)
		}
		rb.Rules = append(rb.Rules, Rule{
			ID:         doc.ID,
			Antecedent: expr,
			Consequent: doc.Then,
			Fallback:   doc.Fallback,
		})
	}
	return rb, nil
}

// MarshalRuleBase encodes rb in the same format ParseRuleBase reads.
func MarshalRuleBase(rb RuleBase) ([]byte, error) {
	f := ruleFile{Rules: make([]ruleDoc, 0, len(rb.Rules))}
	for _, r := range rb.Rules {
		f.Rules = append(f.Rules, ruleDoc{
			ID:       r.ID,
			Then:     r.Consequent,
			Fallback: r.Fallback,
			When:     fromExpr(r.Antecedent),
		})
	}
	return yaml.Marshal(f)
}

func (d exprDoc) toExpr() (Expr, error) {
	set := 0
	if d.Is != "" {
		set++
	}
	if len(d.All) > 0 {
		set++
	}
	if len(d.Any) > 0 {
		set++
	}
	if set != 1 {
		return Expr{}, fmt.Errorf("condition must have exactly one of is, all, any")
	}
	if d.Is != "" {
		i := strings.LastIndex(d.Is, ".")
		if i <= 0 || i == len(d.Is)-1 {
			return Expr{}, fmt.Errorf("condition %q: want criterion.label", d.Is)
		}
		return Is(d.Is[:i], d.Is[i+1:]), nil
	}
	op, children := OpAnd, d.All
	if len(d.Any) > 0 {
		op, children = OpOr, d.Any
	}
	args := make([]Expr, 0, len(children))
	for _, c := range children {
		e, err := c.toExpr()
		if err != nil {
			return Expr{}, err
		}
		args = append(args, e)
	}
	return Expr{Op: op, Args: args}, nil
}

func fromExpr(e Expr) exprDoc {
	switch e.Op {
	case OpAnd:
		return exprDoc{All: fromExprs(e.Args)}
	case OpOr:
		return exprDoc{Any: fromExprs(e.Args)}
	}
	return exprDoc{Is: e.Criterion + "." + e.Label}
}

func fromExprs(es []Expr) []exprDoc {
	out := make([]exprDoc, len(es))
	for i, e := range es {
		out[i] = fromExpr(e)
	}
	return out
}

// LoadSystem pairs the default model with the rule file at path, or with the
// built-in rule base when path is empty.
func LoadSystem(path string) (*System, error) {
	if path == "" {
		return DefaultSystem(), nil
	}
	rb, err := LoadRuleBase(path)
	if err != nil {
		return nil, err
	}
	return NewSystem(DefaultModel(), rb)
}
