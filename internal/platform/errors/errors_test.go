package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeMalformedDateKey, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	// nil *Error should render "<nil>"
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil Error() = %q", e.Error())
	}

	cause := stderrs.New("root cause")
	err := Wrap(cause, ErrorCodeDB, "query failed")
	if got := err.Error(); got != "query failed: root cause" {
		t.Fatalf("Error() = %q", got)
	}

	ee, ok := As(err)
	if !ok {
		t.Fatal("As should recognize our error")
	}
	if ee.Code() != ErrorCodeDB {
		t.Fatalf("Code() = %v", ee.Code())
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("wrapped cause must survive errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root = %v", Root(err))
	}
}

func TestCodeOfAndIsCode(t *testing.T) {
	if CodeOf(nil) != ErrorCodeUnknown {
		t.Fatal("CodeOf(nil)")
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatal("CodeOf(plain)")
	}
	err := MalformedDateKeyf("bad key %q", "2024-x")
	if !IsCode(err, ErrorCodeMalformedDateKey) {
		t.Fatal("IsCode on sugar constructor")
	}
	// code survives a stdlib wrap
	wrapped := fmt.Errorf("outer: %w", err)
	if !IsCode(wrapped, ErrorCodeMalformedDateKey) {
		t.Fatal("IsCode through fmt wrap")
	}
}

func TestWithField(t *testing.T) {
	err := Validationf("must be a date")
	err2 := WithField(err, "start_date")
	e2, _ := As(err2)
	if e2.Field() != "start_date" {
		t.Fatalf("Field = %q", e2.Field())
	}
	// original untouched
	e1, _ := As(err)
	if e1.Field() != "" {
		t.Fatal("WithField must copy, not mutate")
	}
	// non-project errors pass through
	plain := stderrs.New("plain")
	if WithField(plain, "x") != plain {
		t.Fatal("WithField on foreign error should be identity")
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(nil)
	if w.Code != ErrorCodeUnknown || w.Message != "" {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	w = WireFrom(WithField(Validationf("must be a date"), "end_date"))
	if w.Code != ErrorCodeValidation || w.Field != "end_date" || w.Message != "must be a date" {
		t.Fatalf("WireFrom = %+v", w)
	}
	w = WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("WireFrom(plain) = %+v", w)
	}
}

func TestSugarConstructors(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{Validationf("x"), ErrorCodeValidation},
		{MalformedDateKeyf("x"), ErrorCodeMalformedDateKey},
		{DBf("x"), ErrorCodeDB},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if CodeOf(c.err) != c.want {
			t.Fatalf("CodeOf(%v) = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
}
