// Package classify maps the extracted fields of a confirmation to a bill
// category using an ordered rule table. The first matching rule wins.
package classify

import (
	"github.com/dgallion1/billdigest/internal/bill"
	"github.com/dgallion1/billdigest/internal/extract"
)

// Input is one document as seen by the classifier.
type Input struct {
	Filename string
	Index    int
	Fields   extract.Fields
}

func (in Input) source() bill.Source {
	return bill.Source{Filename: in.Filename, Index: in.Index}
}

// Rule pairs a match predicate with the parser for its category.
type Rule struct {
	Name string
	// Payee must be contained in the payee field.
	Payee string
	// Code must equal the routing code exactly.
	Code string
	// Descriptions lists substrings; any one of them must be in the description.
	Descriptions []string
	Parse        func(in Input) (bill.Outcome, error)
}

// Matches reports whether the rule's predicate holds. Absent fields never match.
func (r Rule) Matches(f extract.Fields) bool {
	if !f.Payee.Contains(r.Payee) || !f.Code.Equals(r.Code) {
		return false
	}
	for _, d := range r.Descriptions {
		if f.Description.Contains(d) {
			return true
		}
	}
	return false
}

// Classifier evaluates rules in order.
type Classifier struct {
	rules []Rule
}

// New returns a classifier over rules, evaluated in the given order.
func New(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Default returns the classifier for the known utility payees.
func Default() *Classifier {
	return New(DefaultRules()...)
}

// Match returns the first rule whose predicate holds.
func (c *Classifier) Match(f extract.Fields) (Rule, bool) {
	for _, r := range c.rules {
		if r.Matches(f) {
			return r, true
		}
	}
	return Rule{}, false
}

// Classify runs the first matching rule's parser. A document that matches no
// rule is an ErrUnrecognizedDocument.
func (c *Classifier) Classify(in Input) (bill.Outcome, error) {
	r, ok := c.Match(in.Fields)
	if !ok {
		return nil, &bill.DocumentError{Filename: in.Filename, Err: bill.ErrUnrecognizedDocument}
	}
	return r.Parse(in)
}
