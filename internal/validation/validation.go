// Package validation checks raw request input against ordered rule sets and
// reports every failing rule, in order, as a structured Failure.
package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Location says where in the request a value came from.
type Location string

const (
	LocationBody Location = "body"
	LocationPath Location = "path"
)

// Failure is one rejected rule.
type Failure struct {
	Type     string   `json:"type"`
	Value    any      `json:"value,omitempty"`
	Msg      string   `json:"msg"`
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// Result is the ordered list of failures; empty means the input is valid.
type Result []Failure

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r) == 0
}

// Input is the raw, already-parsed request data a rule set is checked against.
type Input struct {
	Params map[string]string
	Body   map[string]any
}

// Rule checks one value with a validator tag and reports Msg when it fails.
type Rule struct {
	Field    string
	Location Location
	Tag      string
	Msg      string
}

// RuleSet groups the rules of one operation. Path rules run first; if any
// of them fail, body rules are skipped and only the path failures are reported.
type RuleSet struct {
	Path []Rule
	Body []Rule
}

// Validator evaluates rule sets. It holds no per-request state, so the same
// input always yields the same Result.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the catalog's custom tags registered.
func New() *Validator {
	v := validator.New()
	mustRegister(v, "positive", isPositive)
	mustRegister(v, "fits", fitsColumn)
	mustRegister(v, "boolean", isBoolean)
	mustRegister(v, "integer", isInteger)
	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn func(value, param string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String(), fl.Param())
	})
	if err != nil {
		panic(err)
	}
}

// Validate runs rs against in.
func (v *Validator) Validate(rs RuleSet, in Input) Result {
	if failures := v.run(rs.Path, in); len(failures) > 0 {
		return failures
	}
	return v.run(rs.Body, in)
}

func (v *Validator) run(rules []Rule, in Input) Result {
	var failures Result
	for _, rule := range rules {
		raw, present := lookup(rule, in)
		if err := v.validate.Var(stringify(raw), rule.Tag); err != nil {
			f := Failure{
				Type:     "field",
				Msg:      rule.Msg,
				Path:     rule.Field,
				Location: rule.Location,
			}
			if present {
				f.Value = raw
			}
			failures = append(failures, f)
		}
	}
	return failures
}

func lookup(rule Rule, in Input) (any, bool) {
	switch rule.Location {
	case LocationPath:
		s, ok := in.Params[rule.Field]
		return s, ok
	default:
		raw, ok := in.Body[rule.Field]
		return raw, ok && raw != nil
	}
}

// isPositive reports whether s is still greater than zero once rounded to
// the scale given as param ("positive=2"), which is what the store keeps.
func isPositive(s, param string) bool {
	d, ok := parseDecimal(s)
	if !ok {
		return false
	}
	scale, err := strconv.ParseInt(param, 10, 32)
	if err != nil {
		return false
	}
	return d.Round(int32(scale)).IsPositive()
}

// fitsColumn reports whether s, rounded to scale, fits a decimal column
// declared as param "precision.scale" ("fits=10.2"). Values that do not parse
// as numbers pass; the numeric rule reports them.
func fitsColumn(s, param string) bool {
	d, ok := parseDecimal(s)
	if !ok {
		return true
	}
	p, sc, ok := strings.Cut(param, ".")
	if !ok {
		return false
	}
	precision, err := strconv.ParseInt(p, 10, 32)
	if err != nil {
		return false
	}
	scale, err := strconv.ParseInt(sc, 10, 32)
	if err != nil {
		return false
	}
	limit := decimal.New(1, int32(precision-scale))
	return d.Round(int32(scale)).Abs().LessThan(limit)
}

// maxExponent bounds the exponents parseDecimal accepts. Rounding rescales
// the coefficient, so an unbounded exponent would make it arbitrarily large.
const maxExponent = 1000

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Exponent() > maxExponent || d.Exponent() < -maxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

func isBoolean(s, _ string) bool {
	switch s {
	case "true", "false", "1", "0":
		return true
	}
	return false
}

func isInteger(s, _ string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
