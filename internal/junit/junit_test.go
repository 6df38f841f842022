package junit

import (
	"testing"
)

func TestParse_MultiSuiteEnvelope(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="suite-a" tests="5" failures="1" errors="0" skipped="0" time="1.5">
    <testcase name="t1" classname="pkg.A" time="0.1"/>
    <testcase name="t2" classname="pkg.A" time="0.2">
      <failure message="assertion failed" type="AssertionError">stack trace here</failure>
    </testcase>
  </testsuite>
  <testsuite name="suite-b" tests="3" failures="0" errors="0" skipped="1" time="0.5">
    <testcase name="t3" classname="pkg.B" time="0.3"/>
  </testsuite>
</testsuites>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results.Suites) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(results.Suites))
	}
	if results.Suites[0].Name != "suite-a" || results.Suites[1].Name != "suite-b" {
		t.Errorf("suite order not preserved: %q, %q", results.Suites[0].Name, results.Suites[1].Name)
	}

	// Summary sums per-suite counts
	if results.Summary.TotalTests != 8 {
		t.Errorf("expected totalTests=8, got %d", results.Summary.TotalTests)
	}
	if results.Summary.TotalFailures != 1 {
		t.Errorf("expected totalFailures=1, got %d", results.Summary.TotalFailures)
	}
	if results.Summary.TotalSkipped != 1 {
		t.Errorf("expected totalSkipped=1, got %d", results.Summary.TotalSkipped)
	}
	if results.Summary.TotalTime != 2.0 {
		t.Errorf("expected totalTime=2.0, got %g", results.Summary.TotalTime)
	}

	if len(results.FailedTests) != 1 {
		t.Fatalf("expected 1 failed test, got %d", len(results.FailedTests))
	}
	ft := results.FailedTests[0]
	if ft.SuiteName != "suite-a" || ft.TestName != "t2" || ft.ClassName != "pkg.A" {
		t.Errorf("unexpected failed test identity: %+v", ft)
	}
	if ft.Message != "assertion failed" || ft.Type != "AssertionError" || ft.Details != "stack trace here" {
		t.Errorf("unexpected failed test payload: %+v", ft)
	}
}

func TestParse_BareRootSuite(t *testing.T) {
	xml := `<testsuite name="solo" tests="2" failures="0" errors="0" skipped="0" time="0.4">
  <testcase name="a" classname="c" time="0.2"/>
  <testcase name="b" classname="c" time="0.2"/>
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A single bare suite must not be double-wrapped
	if len(results.Suites) != 1 {
		t.Fatalf("expected 1 suite, got %d", len(results.Suites))
	}
	if results.Suites[0].Name != "solo" {
		t.Errorf("expected suite name solo, got %q", results.Suites[0].Name)
	}
	if len(results.Suites[0].TestCases) != 2 {
		t.Errorf("expected 2 test cases, got %d", len(results.Suites[0].TestCases))
	}
	if results.Summary.TotalTests != 2 {
		t.Errorf("expected totalTests=2, got %d", results.Summary.TotalTests)
	}
}

func TestParse_SingleSuiteUnderEnvelope(t *testing.T) {
	xml := `<testsuites>
  <testsuite name="only" tests="1">
    <testcase name="a"/>
  </testsuite>
</testsuites>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results.Suites) != 1 || results.Suites[0].Name != "only" {
		t.Fatalf("expected single suite 'only', got %+v", results.Suites)
	}
}

func TestParse_Defaults(t *testing.T) {
	xml := `<testsuite>
  <testcase/>
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	suite := results.Suites[0]
	if suite.Name != "Unknown Suite" {
		t.Errorf("expected default suite name, got %q", suite.Name)
	}
	if suite.Tests != 0 || suite.Failures != 0 || suite.Errors != 0 || suite.Skipped != 0 || suite.Time != 0 {
		t.Errorf("expected zero counts, got %+v", suite)
	}

	tc := suite.TestCases[0]
	if tc.Name != "Unknown Test" {
		t.Errorf("expected default test name, got %q", tc.Name)
	}
	if tc.Classname != "" {
		t.Errorf("expected empty classname, got %q", tc.Classname)
	}
	if tc.Time != 0 {
		t.Errorf("expected time=0, got %g", tc.Time)
	}
	if tc.Status != StatusPassed {
		t.Errorf("expected passed, got %q", tc.Status)
	}
}

func TestParse_UnparseableCountsDefaultToZero(t *testing.T) {
	xml := `<testsuite name="weird" tests="lots" failures="-3" errors="NaN" time="fast">
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	suite := results.Suites[0]
	if suite.Tests != 0 || suite.Failures != 0 || suite.Errors != 0 || suite.Time != 0 {
		t.Errorf("expected all defaults zero, got %+v", suite)
	}
}

func TestParse_StatusPriority(t *testing.T) {
	// failure wins over error, error wins over skipped
	xml := `<testsuite name="s" tests="3">
  <testcase name="both">
    <failure message="f"/>
    <error message="e"/>
  </testcase>
  <testcase name="err-skip">
    <error message="e"/>
    <skipped/>
  </testcase>
  <testcase name="skip-only">
    <skipped/>
  </testcase>
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := results.Suites[0].TestCases
	if cases[0].Status != StatusFailed {
		t.Errorf("case 0: expected failed, got %q", cases[0].Status)
	}
	if cases[1].Status != StatusError {
		t.Errorf("case 1: expected error, got %q", cases[1].Status)
	}
	if cases[2].Status != StatusSkipped {
		t.Errorf("case 2: expected skipped, got %q", cases[2].Status)
	}

	// Exactly one status holds per case
	for i, tc := range cases {
		set := 0
		if tc.Failure != nil {
			set++
		}
		if tc.Error != nil {
			set++
		}
		if tc.Skipped != nil {
			set++
		}
		if set > 1 {
			t.Errorf("case %d: multiple status payloads set", i)
		}
	}
}

func TestParse_SkippedMarkerWithoutMessage(t *testing.T) {
	xml := `<testsuite name="s" tests="1">
  <testcase name="skipme">
    <skipped/>
  </testcase>
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tc := results.Suites[0].TestCases[0]
	if tc.Status != StatusSkipped {
		t.Fatalf("expected skipped, got %q", tc.Status)
	}
	if tc.Skipped == nil || *tc.Skipped != "" {
		t.Errorf("expected empty skip message, got %v", tc.Skipped)
	}
}

func TestParse_SkippedMessageSources(t *testing.T) {
	xml := `<testsuite name="s" tests="3">
  <testcase name="attr">
    <skipped message="not on windows"/>
  </testcase>
  <testcase name="text">
    <skipped>flaky, disabled</skipped>
  </testcase>
  <testcase name="empty-attr-with-text">
    <skipped message="">ignored</skipped>
  </testcase>
</testsuite>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := results.Suites[0].TestCases
	if *cases[0].Skipped != "not on windows" {
		t.Errorf("expected attr message, got %q", *cases[0].Skipped)
	}
	if *cases[1].Skipped != "flaky, disabled" {
		t.Errorf("expected text message, got %q", *cases[1].Skipped)
	}
	// A present message attribute wins over text content, even when empty
	if *cases[2].Skipped != "" {
		t.Errorf("expected empty attr to win over text, got %q", *cases[2].Skipped)
	}
}

func TestParse_ErrorCasesFlattened(t *testing.T) {
	xml := `<testsuites>
  <testsuite name="one" tests="2">
    <testcase name="a">
      <error message="boom" type="RuntimeError">trace-a</error>
    </testcase>
    <testcase name="b">
      <failure message="nope" type="Assert">trace-b</failure>
    </testcase>
  </testsuite>
  <testsuite name="two" tests="1">
    <testcase name="c">
      <failure message="later"/>
    </testcase>
  </testsuite>
</testsuites>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// failedTests preserves suite-then-case encounter order
	if len(results.FailedTests) != 3 {
		t.Fatalf("expected 3 flattened failures, got %d", len(results.FailedTests))
	}
	order := []string{"a", "b", "c"}
	for i, want := range order {
		if results.FailedTests[i].TestName != want {
			t.Errorf("position %d: expected %q, got %q", i, want, results.FailedTests[i].TestName)
		}
	}
	if results.FailedTests[0].Message != "boom" || results.FailedTests[0].Type != "RuntimeError" || results.FailedTests[0].Details != "trace-a" {
		t.Errorf("unexpected error payload: %+v", results.FailedTests[0])
	}
}

func TestParse_SuiteWithoutCasesStillCounts(t *testing.T) {
	// Counts and case-level detail are independently sourced
	xml := `<testsuites>
  <testsuite name="counted" tests="10" failures="2" errors="1" skipped="3" time="12.25"/>
</testsuites>`

	results, err := Parse(xml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if results.Summary.TotalTests != 10 || results.Summary.TotalFailures != 2 ||
		results.Summary.TotalErrors != 1 || results.Summary.TotalSkipped != 3 {
		t.Errorf("expected counts from suite attributes, got %+v", results.Summary)
	}
	if len(results.Suites[0].TestCases) != 0 {
		t.Errorf("expected no test cases, got %d", len(results.Suites[0].TestCases))
	}
	if len(results.FailedTests) != 0 {
		t.Errorf("expected no flattened failures without case detail, got %d", len(results.FailedTests))
	}
}

func TestParse_SummaryOrderIndependent(t *testing.T) {
	a := `<testsuites>
  <testsuite name="x" tests="5" failures="1" time="1.5"/>
  <testsuite name="y" tests="3" failures="0" time="0.5"/>
</testsuites>`
	b := `<testsuites>
  <testsuite name="y" tests="3" failures="0" time="0.5"/>
  <testsuite name="x" tests="5" failures="1" time="1.5"/>
</testsuites>`

	ra, err := Parse(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rb, err := Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ra.Summary != rb.Summary {
		t.Errorf("summary depends on suite order: %+v vs %+v", ra.Summary, rb.Summary)
	}
	if ra.Summary.TotalTests != 8 || ra.Summary.TotalFailures != 1 {
		t.Errorf("expected totals 8/1, got %+v", ra.Summary)
	}
}

func TestParse_UnexpectedRoot(t *testing.T) {
	if _, err := Parse(`<report><testsuite name="s"/></report>`); err == nil {
		t.Error("expected error for unexpected root element")
	}
}

func TestParse_NotXML(t *testing.T) {
	if _, err := Parse(`{"this": "is json"}`); err == nil {
		t.Error("expected error for non-XML input")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty input")
	}
}
