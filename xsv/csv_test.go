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

package xsv

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/outlierdb/sqlcsv/row"
)

func TestCsvChopperSkipsBlankLinesAndTrims(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "R.csv")
	if err := os.WriteFile(path, []byte("1, 2\n\n3,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var got [][]string
	for {
		fields, err := c.GetNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, fields)
	}
	want := [][]string{{"1", "2"}, {"3", "4"}}
	if len(got) != len(want) {
		t.Fatalf("got %v rows, want %v", got, want)
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("row %d field %d = %q, want %q", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestCsvChopperReset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "R.csv")
	if err := os.WriteFile(path, []byte("1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.GetNext(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetNext(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetNext(); err != nil {
		t.Fatalf("after Reset, expected the first row again: %v", err)
	}
}

func TestCsvChopperGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "R.csv.gz")
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	gw.Write([]byte("5,6\n"))
	gw.Close()
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	fields, err := c.GetNext()
	if err != nil {
		t.Fatal(err)
	}
	if fields[0] != "5" || fields[1] != "6" {
		t.Errorf("fields = %v", fields)
	}
}

func TestWriterFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.WriteTuple(row.Tuple{row.Text("1"), row.Text("2")}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "1, 2\n" {
		t.Errorf("output = %q, want %q", buf.String(), "1, 2\n")
	}
}
