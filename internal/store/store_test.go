package store

import (
	"os"
	"testing"
	"time"
)

func TestAddAndRetrieveRuns(t *testing.T) {
	tmp := t.TempDir()
	s := New(tmp)

	record := RunRecord{
		ID:        "run-1",
		Board:     "nrf52840dk",
		Test:      "hello",
		Outcome:   "passed",
		Timestamp: time.Now(),
		Duration:  "12.5s",
	}

	if err := s.AddRun(record); err != nil {
		t.Fatalf("AddRun failed: %v", err)
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Board != "nrf52840dk" {
		t.Errorf("expected board=nrf52840dk, got=%s", runs[0].Board)
	}
	if runs[0].Outcome != "passed" {
		t.Errorf("expected outcome=passed, got=%s", runs[0].Outcome)
	}
}

func TestAddMultipleRuns(t *testing.T) {
	tmp := t.TempDir()
	s := New(tmp)

	s.AddRun(RunRecord{ID: "a", Board: "mock", Test: "hello", Outcome: "passed", Timestamp: time.Now()})
	s.AddRun(RunRecord{ID: "b", Board: "mock", Test: "multi-alarm", Outcome: "failed", Timestamp: time.Now()})

	runs, _ := s.Runs()
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
	if runs[1].Test != "multi-alarm" {
		t.Errorf("records out of order: %+v", runs)
	}
}

func TestEmptyStore(t *testing.T) {
	s := New(t.TempDir())

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs on empty store failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestWriteConsoleLog(t *testing.T) {
	s := New(t.TempDir())

	path, err := s.WriteConsoleLog("run-1", []string{"Hello World!", "second line"})
	if err != nil {
		t.Fatalf("WriteConsoleLog failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not readable: %v", err)
	}
	if string(data) != "Hello World!\nsecond line\n" {
		t.Errorf("unexpected log contents: %q", string(data))
	}
}
