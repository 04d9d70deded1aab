package calculator

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		postfix string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"name", "x", "x"},
		{"add", "1 + 2", "1 2 +"},
		{"left-assoc-add", "1 + 2 + 3", "1 2 + 3 +"},
		{"left-assoc-sub", "10 - 3 - 2", "10 3 - 2 -"},
		{"mul-over-add", "2 + 3 * 4", "2 3 4 * +"},
		{"mul-first", "2 * 3 + 4", "2 3 * 4 +"},
		{"div-mul", "8 / 4 * 2", "8 4 / 2 *"},
		{"parens", "(2 + 3) * 4", "2 3 + 4 *"},
		{"nested", "((1 + 2) * (3 - 4)) / 5", "1 2 + 3 4 - * 5 /"},
		{"redundant", "(((7)))", "7"},
		{"folded", "1 + + + 2", "1 2 +"},
		{"folded-minus", "5 - - - 2", "5 2 -"},
		{"folded-split", "1 -- - 2", "1 2 -"},
		{"signed-operand", "3 * -2", "3 -2 *"},
		// Subtraction binds tighter than addition here, so the subtraction
		// happens first even though it is to the right.
		{"sub-over-add", "1 + 2 - 3", "1 2 3 - +"},
		{"add-then-sub", "1 - 2 + 3", "1 2 - 3 +"},
		{"assign", "a = 5", "a 5 ="},
		{"assign-expr", "a = b + 1", "a b 1 + ="},
		{"assign-parens", "a = (1 + 2) * 3", "a 1 2 + 3 * ="},
		{"assign-nospace", "a=5", "a 5 ="},
		{"double-assign", "a = b = 1", "a b = 1 ="},
		{"assign-in-parens", "(a = 1)", "a 1 ="},
		{"assign-sub", "a = 5 - 2 + 1", "a 5 2 - 1 + ="},
		{"assign-late", "1 + a = 5", "1 a 5 = +"},
		{"missing-operand", "1 +", "1 +"},
		{"missing-operator", "1 2", "1 2"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := e.String(); got != c.postfix {
				t.Errorf("%q gave wrong postfix order: want %q, got %q", c.src, c.postfix, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unclosed", "( 1 + 2"},
		{"unclosed-inner", "1 + ( 2"},
		{"unopened", "1 + 2 )"},
		{"unopened-first", ") 1"},
		{"unopened-after-group", "(1) + 2)"},
		{"bad-token", "1 $ 2"},
		{"real", "1.5 + 2"},
		{"power", "2 ^ 3"},
		{"double-mul", "2 ** 3"},
		{"multi-assign-nospace", "a=b=1"},
		{"digit-name", "a1 + 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed as %v", c.src, e)
			}
			var ee *ExpressionError
			if !errors.As(err, &ee) {
				t.Fatalf("%q gave %#v, not *ExpressionError", c.src, err)
			}
			if ee.Reason == "" {
				t.Errorf("%q gave an error with no reason", c.src)
			}
			if got := err.Error(); got != "Invalid expression" {
				t.Errorf("wrong message: %q", got)
			}
		})
	}
}

func TestConvertNoBrackets(t *testing.T) {
	srcs := []string{"(1)", "((a + b) * (c - d))", "x = (((1)))", "(1 + (2 * (3 / (4 - 5))))"}
	for _, src := range srcs {
		e, err := Parse(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		for _, it := range e.postfix {
			if it.kind == itemOpen || it.kind == itemClose {
				t.Errorf("%q has a bracket in postfix order %v", src, e)
			}
		}
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1 + 2 + 3", nil},
		{"one", "1 + 2 + x", []string{"x"}},
		{"sort", "z + y + x + b + a", []string{"a", "b", "x", "y", "z"}},
		{"reuse", "a + b + c + b + a", []string{"a", "b", "c"}},
		{"assign", "n = m * 2", []string{"m", "n"}},
		{"signed", "-x + x", []string{"-x", "x"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q didn't parse: %v", c.src, err)
			}
			if diff := cmp.Diff(c.vars, e.Vars()); diff != "" {
				t.Errorf("%q gave wrong variable names (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestAssigns(t *testing.T) {
	cases := map[string]bool{
		"a = 1":   true,
		"a + 1":   false,
		"(a = 1)": true,
		"1":       false,
	}
	for src, want := range cases {
		e, err := Parse(src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", src, err)
			continue
		}
		if got := e.Assigns(); got != want {
			t.Errorf("%q: want Assigns() = %t, got %t", src, want, got)
		}
	}
}
