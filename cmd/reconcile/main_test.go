package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fitrecon/pkg/domain"
)

func runReconcile(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunMergesExportsIntoArtifact(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fft_combined.json")
	code, stdout, stderr := runReconcile(t,
		"-cycle-a", "testdata/cycle_2024.csv",
		"-cycle-b", "testdata/cycle_2025.csv",
		"-out", out,
	)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var records []domain.Participant
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("artifact not JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 merged participants, got %d", len(records))
	}

	byName := map[string]domain.Participant{}
	for _, r := range records {
		byName[r.Name] = r
	}

	alice := byName["Alice Tan"]
	if alice.DOB != "1950-03-05" || alice.PhoneNumber != "+65 9123-4567" {
		t.Fatalf("unexpected identity fields %+v", alice)
	}
	if alice.Location != "CT Hub" || alice.Gender != domain.GenderFemale {
		t.Fatalf("defaults not applied %+v", alice)
	}
	// The multi-line quoted header must resolve to the grip station.
	if alice.Measurements["2024"].Grip != "25.1" || alice.Measurements["2025"].Grip != "24.8" {
		t.Fatalf("grip not reconciled across cycles: %+v", alice.Measurements)
	}
	if alice.Measurements["2025"].Squat != "12" {
		t.Fatalf("short-form squat header not resolved: %+v", alice.Measurements["2025"])
	}

	bob := byName["Bob Lim"]
	if !bob.HasCycle("2024") || bob.HasCycle("2025") {
		t.Fatalf("bob should appear in 2024 only: %+v", bob.Measurements)
	}
	carol := byName["Carol Ng"]
	if carol.HasCycle("2024") || !carol.HasCycle("2025") {
		t.Fatalf("carol should appear in 2025 only: %+v", carol.Measurements)
	}

	if !strings.Contains(stdout, "1 dropped") {
		t.Fatalf("drop count missing from summary:\n%s", stdout)
	}
	if !strings.Contains(stdout, "merged 3 participants") {
		t.Fatalf("merge summary missing:\n%s", stdout)
	}
}

func TestRunRequiresBothExports(t *testing.T) {
	code, _, stderr := runReconcile(t, "-cycle-a", "testdata/cycle_2024.csv")
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(stderr, "required") {
		t.Fatalf("usage hint missing: %s", stderr)
	}
}

func TestRunReportsMissingExportFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	code, _, stderr := runReconcile(t,
		"-cycle-a", "testdata/does_not_exist.csv",
		"-cycle-b", "testdata/cycle_2025.csv",
		"-out", out,
	)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr, "does_not_exist.csv") {
		t.Fatalf("missing file not named: %s", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("artifact must not be written on failure")
	}
}

func TestRunCustomLabels(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	code, stdout, stderr := runReconcile(t,
		"-cycle-a", "testdata/cycle_2024.csv",
		"-cycle-b", "testdata/cycle_2025.csv",
		"-label-a", "baseline",
		"-label-b", "followup",
		"-out", out,
	)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "cycle baseline:") || !strings.Contains(stdout, "cycle followup:") {
		t.Fatalf("labels not echoed:\n%s", stdout)
	}

	b, _ := os.ReadFile(out)
	var records []domain.Participant
	if err := json.Unmarshal(b, &records); err != nil {
		t.Fatalf("artifact not JSON: %v", err)
	}
	for _, r := range records {
		for cycle := range r.Measurements {
			if cycle != "baseline" && cycle != "followup" {
				t.Fatalf("unexpected cycle label %q", cycle)
			}
		}
	}
}
