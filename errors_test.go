// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtext_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jtext"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		kind jtext.ErrorKind
		want string
	}{
		{jtext.NoError, "no error"},
		{jtext.Exponent, "unsupported exponent"},
		{jtext.Busy, "cursor busy"},
		{jtext.BadValue, "invalid value"},
		{jtext.TooDeep, "nesting too deep"},
		{jtext.ErrorKind(200), "ErrorKind(200)"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("String %d: got %q, want %q", tc.kind, got, tc.want)
		}
		if got := tc.kind.Error(); got != tc.want {
			t.Errorf("Error %d: got %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestErrorf(t *testing.T) {
	err := jtext.Errorf(jtext.NotFound, "member %q not found", "x")
	if got, want := err.Error(), `member "x" not found`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if !errors.Is(err, jtext.NotFound) {
		t.Errorf("Is(%v, NotFound): got false, want true", err)
	}
	if errors.Is(err, jtext.OutOfRange) {
		t.Errorf("Is(%v, OutOfRange): got true, want false", err)
	}
	if errors.Unwrap(err) != nil {
		t.Errorf("Unwrap: got %v, want nil", errors.Unwrap(err))
	}

	wrapped := jtext.Errorf(jtext.ReadError, "read: %w", io.ErrUnexpectedEOF)
	if !errors.Is(wrapped, io.ErrUnexpectedEOF) || !errors.Is(wrapped, jtext.ReadError) {
		t.Errorf("Errorf: got %v, want to wrap %v", wrapped, io.ErrUnexpectedEOF)
	}
	if got, want := wrapped.Error(), "read: unexpected EOF"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestTrailingError(t *testing.T) {
	_, err := jtext.NewScanner(strings.NewReader(`  @`))
	if err == nil {
		t.Fatal("NewScanner: got nil, want error")
	}
	got := jtext.TrailingError(err)
	if !errors.Is(got, jtext.ExtraInput) || !errors.Is(got, jtext.BadInput) {
		t.Errorf("TrailingError: got %v, want %v wrapping %v", got, jtext.ExtraInput, jtext.BadInput)
	}
	const want = `at 1:3: invalid input after root value: unexpected '@' (a string value must be quoted)`
	if got.Error() != want {
		t.Errorf("TrailingError: got %q, want %q", got.Error(), want)
	}

	rerr := jtext.Errorf(jtext.ReadError, "read: %w", io.ErrClosedPipe)
	if got := jtext.TrailingError(rerr); got != error(rerr) {
		t.Errorf("TrailingError(read error): got %v, want %v", got, rerr)
	}
}
