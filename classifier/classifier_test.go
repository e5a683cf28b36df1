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

package classifier

import "testing"

func TestEmptyCursorIsValidEverywhere(t *testing.T) {
	c := New()
	cur := c.Push()
	defer cur.Release()

	if !cur.IsValidExpression() || !cur.IsValidBindingPattern() ||
		!cur.IsValidAssignmentPattern() || !cur.IsValidArrowFormalParameters() {
		t.Error("a fresh cursor should be valid for every production")
	}
}

func TestRecordErrorFirstWins(t *testing.T) {
	c := New()
	cur := c.Push()
	defer cur.Release()

	loc1 := Location{Start: 1, End: 2}
	loc2 := Location{Start: 5, End: 6}

	cur.RecordExpressionError(loc1, MessageTemplate(10), nil)
	cur.RecordExpressionError(loc2, MessageTemplate(20), nil)

	if cur.IsValidExpression() {
		t.Fatal("cursor should be invalid as an expression after RecordExpressionError")
	}
	got := cur.ExpressionError()
	if got.Location != loc1 || got.Message != MessageTemplate(10) {
		t.Errorf("ExpressionError() = %+v, want the first recorded error (loc %+v, msg 10)", got, loc1)
	}
}

func TestRecordErrorIsPerProduction(t *testing.T) {
	c := New()
	cur := c.Push()
	defer cur.Release()

	cur.RecordExpressionError(Location{Start: 1}, MessageTemplate(1), nil)

	if cur.IsValidExpression() {
		t.Error("expression should be invalid")
	}
	if !cur.IsValidBindingPattern() {
		t.Error("binding pattern should remain valid; RecordError must not leak across productions")
	}
}

func TestFindErrorPanicsOnValidProduction(t *testing.T) {
	c := New()
	cur := c.Push()
	defer cur.Release()

	defer func() {
		if recover() == nil {
			t.Error("FindError on a still-valid production should panic")
		}
	}()
	cur.ExpressionError()
}

func TestReleaseDiscardsCleanScope(t *testing.T) {
	c := New()
	outer := c.Push()

	inner := c.Push()
	inner.Release()

	if len(c.buffer) != 0 {
		t.Errorf("releasing a cursor with no recorded errors should not grow the buffer, got len %d", len(c.buffer))
	}

	outer.Release()
}

func TestAccumulateStandardProductions(t *testing.T) {
	c := New()
	outer := c.Push()
	defer outer.Release()

	inner := c.Push()
	loc := Location{Start: 3, End: 4}
	inner.RecordBindingPatternError(loc, MessageTemplate(7), nil)
	inner.Release()

	outer.Accumulate(inner, StandardProductions)

	if outer.IsValidBindingPattern() {
		t.Fatal("outer should have inherited the inner binding-pattern invalidity")
	}
	got := outer.BindingPatternError()
	if got.Location != loc {
		t.Errorf("outer.BindingPatternError() = %+v, want location %+v", got, loc)
	}
}

func TestAccumulateDoesNotLeakOutsideMask(t *testing.T) {
	c := New()
	outer := c.Push()
	defer outer.Release()

	inner := c.Push()
	inner.RecordDuplicateFormalParameterError(Location{Start: 1})
	inner.Release()

	// StandardProductions does not include DistinctFormalParameters.
	outer.Accumulate(inner, StandardProductions)

	if !outer.IsValidFormalParameterListWithoutDuplicates() {
		t.Error("Accumulate leaked a production outside the requested mask")
	}
}

func TestAccumulateArrowFormalParametersFollowsBindingPatternValidity(t *testing.T) {
	c := New()
	outer := c.Push()
	defer outer.Release()

	inner := c.Push()
	inner.RecordBindingPatternError(Location{Start: 9}, MessageTemplate(3), nil)
	inner.Release()

	outer.Accumulate(inner, StandardProductions|ArrowFormalParameters)

	if outer.IsValidArrowFormalParameters() {
		t.Error("a scope that is not a valid binding pattern cannot be a valid arrow parameter list")
	}
}

func TestAccumulateArrowFormalParametersStaysValid(t *testing.T) {
	c := New()
	outer := c.Push()
	defer outer.Release()

	inner := c.Push()
	inner.RecordExpressionError(Location{Start: 2}, MessageTemplate(1), nil)
	inner.Release()

	outer.Accumulate(inner, StandardProductions|ArrowFormalParameters)

	if !outer.IsValidArrowFormalParameters() {
		t.Error("an expression-only error should not invalidate arrow formal parameters")
	}
}

func TestFindErrorWalksPastSiblingScopes(t *testing.T) {
	c := New()
	top := c.Push()
	defer top.Release()

	first := c.Push()
	firstLoc := Location{Start: 100}
	first.RecordExpressionError(firstLoc, MessageTemplate(1), nil)
	top.Accumulate(first, StandardProductions)
	first.Release()

	second := c.Push()
	second.RecordBindingPatternError(Location{Start: 200}, MessageTemplate(2), nil)
	top.Accumulate(second, StandardProductions)
	second.Release()

	got := top.ExpressionError()
	if got.Location != firstLoc {
		t.Errorf("ExpressionError() = %+v, want the error recorded in the first sibling scope (%+v)", got, firstLoc)
	}
}

func TestReleaseOutOfOrderPanics(t *testing.T) {
	c := New()
	outer := c.Push()
	inner := c.Push()
	_ = inner

	defer func() {
		if recover() == nil {
			t.Error("releasing outer before inner should panic")
		}
	}()
	outer.Release()
}

func TestReleaseTwicePanics(t *testing.T) {
	c := New()
	cur := c.Push()
	cur.Release()

	defer func() {
		if recover() == nil {
			t.Error("releasing a cursor twice should panic")
		}
	}()
	cur.Release()
}
