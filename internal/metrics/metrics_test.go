// Copyright (C) 2026 goir contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package metrics

import "testing"

func TestRecordFunctions_DoNotPanic(t *testing.T) {
	RecordDocumentIndexed("posting")
	RecordDocumentSkipped("invalid_utf8")
	RecordBuildDuration(0.25)
	RecordQuery("positional", 0.001, 5)
	RecordQueryError("bigram", "unsupported_operation")
}
