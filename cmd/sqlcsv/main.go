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

// sqlcsv runs a single SQL query over a directory of CSV tables and
// writes its result as CSV.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
	"sigs.k8s.io/yaml"

	"github.com/outlierdb/sqlcsv/catalog"
	"github.com/outlierdb/sqlcsv/exec"
	"github.com/outlierdb/sqlcsv/plan"
	"github.com/outlierdb/sqlcsv/xsv"
)

var (
	printStats bool
	explain    bool
	digest     bool

	errlog = log.New(os.Stderr, "", 0)
)

func init() {
	flag.BoolVar(&printStats, "S", false, "print execution statistics on stderr")
	flag.BoolVar(&explain, "explain", false, "dump the compiled operator tree instead of executing")
	flag.BoolVar(&digest, "digest", false, "print a blake2b-256 digest of the output file on stderr")
	flag.Usage = printHelp
}

func printHelp() {
	fmt.Fprintln(os.Stderr, "usage: sqlcsv [-S] [-explain] [-digest] <database_dir> <input_query_file> <output_file>")
	flag.PrintDefaults()
}

type execStatistics struct {
	runID     uuid.UUID
	rows      int64
	startTime time.Time
	elapsed   time.Duration
}

func (e *execStatistics) start() {
	e.runID = uuid.New()
	e.startTime = time.Now()
}

func (e *execStatistics) stop() {
	e.elapsed = time.Since(e.startTime)
}

func (e *execStatistics) print() {
	fmt.Fprintf(os.Stderr, "run %s: %d rows in %v\n", e.runID, e.rows, e.elapsed)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		flag.Usage()
		os.Exit(1)
	}
	dbDir, queryFile, outFile := args[0], args[1], args[2]

	if err := run(dbDir, queryFile, outFile); err != nil {
		errlog.Println(err)
		os.Exit(1)
	}
}

func run(dbDir, queryFile, outFile string) error {
	queryBytes, err := os.ReadFile(queryFile)
	if err != nil {
		return fmt.Errorf("reading query file: %w", err)
	}

	cat, err := catalog.Load(dbDir)
	if err != nil {
		return err
	}

	p := plan.New(cat)
	op, err := p.Plan(string(queryBytes))
	if err != nil {
		return err
	}

	if explain {
		return dumpPlan(op)
	}

	out, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	var stats execStatistics
	stats.start()
	n, err := writeResults(op, out)
	stats.rows = n
	stats.stop()
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	if printStats {
		stats.print()
	}
	if digest {
		if err := printDigest(outFile); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(op exec.Op, w io.Writer) (int64, error) {
	xw := xsv.NewWriter(w)
	var n int64
	for {
		t, err := op.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if err := xw.WriteTuple(t); err != nil {
			return n, err
		}
		n++
	}
	return n, xw.Flush()
}

func dumpPlan(op exec.Op) error {
	e, ok := op.(exec.Explainer)
	if !ok {
		return fmt.Errorf("operator tree does not support -explain")
	}
	b, err := yaml.Marshal(e.Explain())
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	_, err = os.Stdout.Write(b)
	return err
}

func printDigest(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return err
	}
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s  %s\n", hex.EncodeToString(h.Sum(nil)), path)
	return nil
}
