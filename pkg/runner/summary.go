package runner

import (
	"fmt"
	"io"

	"github.com/cgast/featspec/pkg/spec"
)

// SpecResult is the outcome of one spec file: scenario pass/fail
// counts under the spec's lifecycle status. Never mutated once
// returned.
type SpecResult struct {
	Passed int
	Failed int
	Status spec.Status
}

// Tally is a cumulative pass/fail count for one status bucket.
type Tally struct {
	Passed int
	Failed int
}

// Summary accumulates results across all spec files of one invocation,
// partitioned by lifecycle status. It is an explicit value threaded
// through the run, created empty and folded once at the end.
type Summary struct {
	Active Tally
	Draft  Tally
	// LoadFailures counts spec files that could not be loaded or
	// parsed. They are tallied in the draft bucket but tracked here
	// separately because they gate the exit code regardless of bucket.
	LoadFailures int
}

// Add folds one spec's result into the summary.
func (s *Summary) Add(res SpecResult) {
	switch res.Status {
	case spec.StatusActive:
		s.Active.Passed += res.Passed
		s.Active.Failed += res.Failed
	default:
		s.Draft.Passed += res.Passed
		s.Draft.Failed += res.Failed
	}
}

// AddLoadFailure records a spec file that could not be loaded or
// parsed. The status field lives inside the unparsed content, so such
// failures are attributed to the draft bucket unconditionally.
func (s *Summary) AddLoadFailure() {
	s.Draft.Failed++
	s.LoadFailures++
}

// ExitCode encodes the lifecycle policy: active failures are
// regressions and gate the build; draft failures document unbuilt
// features and are tolerated. An unloadable spec file gates the exit
// code no matter which bucket its failure was tallied in, so a broken
// file never passes silently.
func (s Summary) ExitCode() int {
	if s.Active.Failed > 0 || s.LoadFailures > 0 {
		return 1
	}
	return 0
}

// Print writes the final summary table.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "\nSummary\n")
	fmt.Fprintf(w, "  active: %d passed, %d failed\n", s.Active.Passed, s.Active.Failed)
	fmt.Fprintf(w, "  draft:  %d passed, %d failed\n", s.Draft.Passed, s.Draft.Failed)
}
