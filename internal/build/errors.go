// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package build

import "errors"

// ErrFileSkipped is wrapped into the error logged for a document the
// builder could not index (unreadable or not valid UTF-8). It is never
// returned from Build or otherwise surfaced to callers — Build only logs
// and counts skips, per spec §7.
var ErrFileSkipped = errors.New("build: file skipped")
