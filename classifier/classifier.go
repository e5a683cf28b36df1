// Copyright 2024 the csource authors.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package classifier accumulates parse errors for a recursive-descent
// expression parser that must keep parsing while several different
// grammar productions (plain expression, binding pattern, assignment
// pattern, various formal-parameter-list flavors) are all still
// plausible, deferring error reporting until the parser commits to one
// of them.
package classifier

// Production is one of the parsing-grammar dispositions a Classifier
// tracks. Each is an independent validity bit; a scope starts out valid
// for every production and becomes invalid for a production the first
// time RecordError is called with that bit on that scope.
type Production uint8

const (
	Expression Production = 1 << iota
	BindingPattern
	AssignmentPattern
	DistinctFormalParameters
	StrictModeFormalParameters
	StrongModeFormalParameters
	ArrowFormalParameters
)

const (
	PatternProductions          = BindingPattern | AssignmentPattern
	FormalParametersProductions = DistinctFormalParameters | StrictModeFormalParameters | StrongModeFormalParameters
	StandardProductions         = Expression | PatternProductions
	AllProductions              = StandardProductions | FormalParametersProductions | ArrowFormalParameters
)

// Location is an opaque scanner location, stored by value without
// interpretation.
type Location struct {
	Start, End int
}

// MessageTemplate is an opaque message-template enumerant.
type MessageTemplate int

// Error is a single recorded parse error: which location it occurred
// at, which message template describes it, and an opaque argument the
// classifier never interprets.
type Error struct {
	Location Location
	Message  MessageTemplate
	Arg      any
}

type elementKind uint8

const (
	leafElement elementKind = iota
	skipElement
)

// bufferElement is either a leaf (a single recorded error) or a skip
// (a summary of one popped scope's worth of leaves, collapsed to the
// scope's invalid-productions bitmask plus how many elements to jump
// back over to skip the whole range).
type bufferElement struct {
	kind              elementKind
	invalidProductions Production
	err               Error // valid when kind == leafElement
	skip              int   // valid when kind == skipElement
}

// Classifier owns one append-only buffer of recorded errors and hands
// out Cursors representing nested parsing sub-scopes.
type Classifier struct {
	buffer []bufferElement
	top    *Cursor
}

// New returns a Classifier with an empty buffer.
func New() *Classifier {
	return &Classifier{buffer: make([]bufferElement, 0, 128)}
}

// Cursor is a stack-discipline handle onto a parsing sub-scope. It
// snapshots the buffer's length at Push time and tracks which
// productions have been invalidated within its scope. Cursors must be
// released (via Release) in the exact reverse order they were pushed.
type Cursor struct {
	classifier         *Classifier
	parent             *Cursor
	start              int
	invalidProductions Production
	released           bool
}

// Push begins a new parsing sub-scope and returns a Cursor for it.
// Callers must call Release on the returned Cursor exactly once, on
// every exit path of the scope it represents — typically via defer.
func (c *Classifier) Push() *Cursor {
	cur := &Cursor{classifier: c, parent: c.top, start: len(c.buffer)}
	c.top = cur
	return cur
}

// Release ends the scope cur represents. If no errors were recorded in
// it (directly or via Accumulate), the buffer is truncated back to the
// scope's start; otherwise one skip element summarizing the scope's
// bitmask and range is appended.
//
// Release must be called exactly once per Cursor, and Cursors must be
// released in the inverse order they were pushed — violating either is
// a programmer error.
func (cur *Cursor) Release() {
	if cur.released {
		panic("classifier: Cursor released more than once")
	}
	c := cur.classifier
	if c.top != cur {
		panic("classifier: Cursor released out of LIFO order")
	}
	cur.released = true
	c.top = cur.parent

	if len(c.buffer) == cur.start {
		return
	}
	if cur.invalidProductions == 0 {
		c.buffer = c.buffer[:cur.start]
		return
	}
	skip := len(c.buffer) - cur.start
	c.buffer = append(c.buffer, bufferElement{
		kind:               skipElement,
		invalidProductions: cur.invalidProductions,
		skip:               skip,
	})
}

// InvalidProductions returns the bitmask of productions this cursor has
// recorded (directly or via Accumulate) as invalid.
func (cur *Cursor) InvalidProductions() Production {
	return cur.invalidProductions
}

func (cur *Cursor) isValid(p Production) bool {
	return cur.invalidProductions&p == 0
}

// IsValidExpression reports whether this scope is still a candidate
// plain expression.
func (cur *Cursor) IsValidExpression() bool { return cur.isValid(Expression) }

// IsValidBindingPattern reports whether this scope is still a
// candidate binding pattern.
func (cur *Cursor) IsValidBindingPattern() bool { return cur.isValid(BindingPattern) }

// IsValidAssignmentPattern reports whether this scope is still a
// candidate assignment pattern.
func (cur *Cursor) IsValidAssignmentPattern() bool { return cur.isValid(AssignmentPattern) }

// IsValidArrowFormalParameters reports whether this scope is still a
// candidate arrow function parameter list.
func (cur *Cursor) IsValidArrowFormalParameters() bool {
	return cur.isValid(ArrowFormalParameters)
}

// IsValidFormalParameterListWithoutDuplicates reports whether this
// scope's formal parameter list is still free of duplicate bindings.
func (cur *Cursor) IsValidFormalParameterListWithoutDuplicates() bool {
	return cur.isValid(DistinctFormalParameters)
}

// IsValidStrictModeFormalParameters reports whether this scope's
// parameter list is still valid under strict mode. Callers should also
// check IsValidFormalParameterListWithoutDuplicates.
func (cur *Cursor) IsValidStrictModeFormalParameters() bool {
	return cur.isValid(StrictModeFormalParameters)
}

// IsValidStrongModeFormalParameters reports whether this scope's
// parameter list is still valid under strong mode. Callers should also
// check IsValidStrictModeFormalParameters and
// IsValidFormalParameterListWithoutDuplicates.
func (cur *Cursor) IsValidStrongModeFormalParameters() bool {
	return cur.isValid(StrongModeFormalParameters)
}

// RecordError records an error for production p on this cursor. If p
// is already invalid on this cursor, RecordError is a no-op — the
// first recorded error per production wins.
func (cur *Cursor) RecordError(p Production, loc Location, msg MessageTemplate, arg any) {
	if !cur.isValid(p) {
		return
	}
	cur.invalidProductions |= p
	cur.classifier.buffer = append(cur.classifier.buffer, bufferElement{
		kind:               leafElement,
		invalidProductions: p,
		err:                Error{Location: loc, Message: msg, Arg: arg},
	})
}

// RecordExpressionError is RecordError(Expression, ...).
func (cur *Cursor) RecordExpressionError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(Expression, loc, msg, arg)
}

// RecordBindingPatternError is RecordError(BindingPattern, ...).
func (cur *Cursor) RecordBindingPatternError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(BindingPattern, loc, msg, arg)
}

// RecordAssignmentPatternError is RecordError(AssignmentPattern, ...).
func (cur *Cursor) RecordAssignmentPatternError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(AssignmentPattern, loc, msg, arg)
}

// RecordArrowFormalParametersError is RecordError(ArrowFormalParameters, ...).
func (cur *Cursor) RecordArrowFormalParametersError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(ArrowFormalParameters, loc, msg, arg)
}

// RecordDuplicateFormalParameterError records a duplicate-binding error
// against DistinctFormalParameters.
func (cur *Cursor) RecordDuplicateFormalParameterError(loc Location) {
	cur.RecordError(DistinctFormalParameters, loc, MessageTemplate(0), nil)
}

// RecordStrictModeFormalParameterError is
// RecordError(StrictModeFormalParameters, ...). Note this is distinct
// from DistinctFormalParameters, which only forbids duplicates — this
// records a binding that would be invalid under strict mode generally.
func (cur *Cursor) RecordStrictModeFormalParameterError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(StrictModeFormalParameters, loc, msg, arg)
}

// RecordStrongModeFormalParameterError is
// RecordError(StrongModeFormalParameters, ...).
func (cur *Cursor) RecordStrongModeFormalParameterError(loc Location, msg MessageTemplate, arg any) {
	cur.RecordError(StrongModeFormalParameters, loc, msg, arg)
}

// FindError returns the recorded error for production p on this
// cursor. It is a programmer error to call FindError for a production
// that is still valid on this cursor.
func (cur *Cursor) FindError(p Production) Error {
	if cur.isValid(p) {
		panic("classifier: FindError called for a still-valid production")
	}
	buffer := cur.classifier.buffer
	end := len(buffer)
	for {
		if end == 0 {
			panic("classifier: FindError walked off the start of the buffer")
		}
		idx := end - 1
		elt := buffer[idx]

		// Arrow formal parameter validity is downstream of binding
		// pattern validity rather than its own: a scope that is
		// only invalid as a binding pattern still counts as a hit
		// when looking up an arrow-parameter error.
		arrowHit := p == ArrowFormalParameters && elt.invalidProductions&BindingPattern != 0
		if elt.invalidProductions&p == 0 && !arrowHit {
			end = idx - elt.skip
			continue
		}
		if elt.kind == leafElement {
			return elt.err
		}
		end = idx
	}
}

// ExpressionError, BindingPatternError, AssignmentPatternError,
// ArrowFormalParametersError, DuplicateFormalParameterError,
// StrictModeFormalParameterError and StrongModeFormalParameterError are
// FindError for each of the seven productions.
func (cur *Cursor) ExpressionError() Error      { return cur.FindError(Expression) }
func (cur *Cursor) BindingPatternError() Error  { return cur.FindError(BindingPattern) }
func (cur *Cursor) AssignmentPatternError() Error {
	return cur.FindError(AssignmentPattern)
}
func (cur *Cursor) ArrowFormalParametersError() Error {
	return cur.FindError(ArrowFormalParameters)
}
func (cur *Cursor) DuplicateFormalParameterError() Error {
	return cur.FindError(DistinctFormalParameters)
}
func (cur *Cursor) StrictModeFormalParameterError() Error {
	return cur.FindError(StrictModeFormalParameters)
}
func (cur *Cursor) StrongModeFormalParameterError() Error {
	return cur.FindError(StrongModeFormalParameters)
}

// Accumulate merges inner's recorded errors into cur, as observed by
// the parent after a completed inner scope. It does not move or copy
// any buffer elements — inner's leaves are already in the buffer,
// either directly or folded into a skip summary written when inner was
// released.
//
// productions is always passed explicitly; StandardProductions is the
// usual mask when the caller has no more specific one.
func (cur *Cursor) Accumulate(inner *Cursor, productions Production) {
	if inner.invalidProductions == 0 {
		return
	}
	nonArrowInner := inner.invalidProductions &^ ArrowFormalParameters
	nonArrowMask := productions &^ ArrowFormalParameters
	cur.invalidProductions |= nonArrowMask & nonArrowInner

	// As an exception to the above, the result remains a valid arrow
	// formal parameter list only if the inner expression is a valid
	// binding pattern.
	if productions&ArrowFormalParameters != 0 && !inner.IsValidBindingPattern() {
		cur.invalidProductions |= ArrowFormalParameters
	}
}
