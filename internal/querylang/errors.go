// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package querylang

import "errors"

// Sentinel errors returned by Lex and Parse. Callers match with errors.Is;
// the REPL prints the wrapped chain and otherwise leaves index state
// untouched, per spec §7.
var (
	ErrInvalidCharacter    = errors.New("invalid character in query")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrUnclosedPhrase      = errors.New("unclosed phrase literal")
	ErrMissingNearNumber   = errors.New("expected number for near operator")
	ErrMissingNearClose    = errors.New("expected closing '}' for near operator")
	ErrMissingOperator     = errors.New("expected operator")
	ErrMissingOperand      = errors.New("missing operand")
	ErrMultipleExpressions = errors.New("expected single expression")
	ErrUnexpectedToken     = errors.New("unexpected token")
)
