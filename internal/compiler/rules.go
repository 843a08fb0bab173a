package compiler

import "clockwork/internal/token"

// precedence orders the grammar's binding power from loosest to tightest,
// matching spec §4.2's ladder exactly: assignment, or, and, equality,
// comparison, term, factor, unary, call, primary.
type precedence int

const (
	precNone precedence = iota
	precAssignment
	precOr
	precAnd
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precCall
	precPrimary
)

// parseFn is a prefix or infix parsing rule, receiving whether the current
// expression position may legally be assigned to.
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is the static table, a map keyed by token type, the Pratt parser
// looks rules up in —
// the same shape as the teacher's compiler.Compiler.parsingRules
// (compiler/compiler.go), generalized from four entries to Clockwork's full
// grammar.
var rules map[token.Type]parseRule

func init() {
	rules = map[token.Type]parseRule{
		token.LPAREN:        {prefix: (*Compiler).grouping, precedence: precNone},
		token.MINUS:         {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: precTerm},
		token.PLUS:          {infix: (*Compiler).binary, precedence: precTerm},
		token.SLASH:         {infix: (*Compiler).binary, precedence: precFactor},
		token.STAR:          {infix: (*Compiler).binary, precedence: precFactor},
		token.BANG:          {prefix: (*Compiler).unary, precedence: precNone},
		token.BANG_EQUAL:    {infix: (*Compiler).binary, precedence: precEquality},
		token.EQUAL_EQUAL:   {infix: (*Compiler).binary, precedence: precEquality},
		token.GREATER:       {infix: (*Compiler).binary, precedence: precComparison},
		token.GREATER_EQUAL: {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS:          {infix: (*Compiler).binary, precedence: precComparison},
		token.LESS_EQUAL:    {infix: (*Compiler).binary, precedence: precComparison},
		token.IDENTIFIER:    {prefix: (*Compiler).variable, precedence: precNone},
		token.STRING:        {prefix: (*Compiler).stringLiteral, precedence: precNone},
		token.NUMBER:        {prefix: (*Compiler).number, precedence: precNone},
		token.NULL:          {prefix: (*Compiler).literal, precedence: precNone},
		token.TRUE:          {prefix: (*Compiler).literal, precedence: precNone},
		token.FALSE:         {prefix: (*Compiler).literal, precedence: precNone},
		token.AND:           {infix: (*Compiler).and_, precedence: precAnd},
		token.OR:            {infix: (*Compiler).or_, precedence: precOr},
	}
}

func getRule(t token.Type) parseRule {
	if r, ok := rules[t]; ok {
		return r
	}
	return parseRule{}
}
