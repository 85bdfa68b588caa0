// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtext implements a JSON scanner and printer.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON.  Construct a scanner
// from an io.Reader; the new scanner is positioned on the first token of the
// input. Call its Next method to advance over the stream:
//
//	s, err := jtext.NewScanner(input)
//	if err != nil {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//	for s.Token() != jtext.EOF {
//	   log.Printf("Next token: %v", s.Token())
//	   if err := s.Next(); err != nil {
//	      log.Fatalf("Scanning failed: %v", err)
//	   }
//	}
//
// The scanner decodes primitive values as it reads them. Strings are
// unescaped (Str), integers are classified as Int32 or Int64 according to
// their range (Int), and numbers with a fractional part are Float64 (Float).
// Exponents are not supported, and integers outside the range of int64 are
// reported as Overflow or Underflow errors.
//
// # Printing
//
// The Printer type writes JSON text with indentation. It does not enforce the
// JSON grammar; the tree and stream packages use it to render values.
//
// # Errors
//
// All errors reported by this module have concrete type *jtext.Error, and
// carry an ErrorKind that classifies them:
//
//	if errors.Is(err, jtext.Overflow) {
//	   log.Print("Number too large")
//	}
//
// Errors are not recoverable: a scanner, parser, reader, or writer that
// reports an error must be discarded.
package jtext
