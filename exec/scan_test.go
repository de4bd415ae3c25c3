// Copyright (C) 2026 The Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package exec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/outlierdb/sqlcsv/row"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestScanEmitsQualifiedMappingAndTuples(t *testing.T) {
	dir := t.TempDir()
	f := writeCSV(t, dir, "R.csv", "1,2\n3,4\n5,6\n")

	s, err := NewScan("R", f, []string{"A", "B"})
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	idx, ok := s.Mapping().Lookup("R.A")
	if !ok || idx != 0 {
		t.Fatalf("expected R.A at index 0, got %d (ok=%v)", idx, ok)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	want := []row.Tuple{ints(1, 2), ints(3, 4), ints(5, 6)}
	if len(out) != len(want) {
		t.Fatalf("got %d rows, want %d", len(out), len(want))
	}
	for i := range want {
		if !row.Equal(out[i], want[i]) {
			t.Fatalf("row %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestScanResetReopensFromStart(t *testing.T) {
	dir := t.TempDir()
	f := writeCSV(t, dir, "R.csv", "1,2\n")

	s, err := NewScan("R", f, []string{"A", "B"})
	if err != nil {
		t.Fatalf("NewScan: %v", err)
	}
	if _, err := drain(s); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	out, err := drain(s)
	if err != nil {
		t.Fatalf("drain after reset: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row after reset, got %d", len(out))
	}
}
