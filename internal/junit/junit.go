// Package junit parses heterogeneous JUnit XML reports into a normalized
// test-result aggregate. Parsing is a pure function over text: no I/O, no
// partial or streaming mode.
package junit

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Status is the outcome of a single test case. Exactly one status holds per
// case, determined by which child node is present, in priority order
// failure, error, skipped, with passed as the fallback.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// TestResults is the normalized aggregate over a whole report document
type TestResults struct {
	Suites      []Suite      `json:"suites"`
	Summary     Summary      `json:"summary"`
	FailedTests []FailedTest `json:"failedTests"`
}

// Summary holds the sums of the per-suite counts. Addition is commutative,
// so suite order never affects the summary.
type Summary struct {
	TotalTests    int     `json:"totalTests"`
	TotalFailures int     `json:"totalFailures"`
	TotalErrors   int     `json:"totalErrors"`
	TotalSkipped  int     `json:"totalSkipped"`
	TotalTime     float64 `json:"totalTime"`
}

// Suite is one testsuite element. Counts come from the suite's own
// attributes, independently of the case-level detail: a suite with zero
// testcase children still contributes its declared counts.
type Suite struct {
	Name      string     `json:"name"`
	Tests     int        `json:"tests"`
	Failures  int        `json:"failures"`
	Errors    int        `json:"errors"`
	Skipped   int        `json:"skipped"`
	Time      float64    `json:"time"`
	Timestamp string     `json:"timestamp,omitempty"`
	TestCases []TestCase `json:"testCases"`
}

// TestCase is one testcase element with its resolved status
type TestCase struct {
	Name      string  `json:"name"`
	Classname string  `json:"classname"`
	Time      float64 `json:"time"`
	Status    Status  `json:"status"`
	Failure   *Detail `json:"failure,omitempty"`
	Error     *Detail `json:"error,omitempty"`
	Skipped   *string `json:"skipped,omitempty"`
}

// Detail carries the message/type attributes and text content of a failure
// or error child node.
type Detail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

// FailedTest is a flattened index entry for a case with status failed or
// error, recorded in suite-then-case encounter order.
type FailedTest struct {
	SuiteName string `json:"suiteName"`
	TestName  string `json:"testName"`
	ClassName string `json:"className"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Details   string `json:"details"`
}

// Raw XML shapes. Numeric attributes are decoded as strings so that a
// missing or unparseable value defaults to zero instead of failing the
// whole document.

type xmlSuites struct {
	Suites []xmlSuite `xml:"testsuite"`
}

type xmlSuite struct {
	Name      string        `xml:"name,attr"`
	Tests     string        `xml:"tests,attr"`
	Failures  string        `xml:"failures,attr"`
	Errors    string        `xml:"errors,attr"`
	Skipped   string        `xml:"skipped,attr"`
	Time      string        `xml:"time,attr"`
	Timestamp string        `xml:"timestamp,attr"`
	TestCases []xmlTestCase `xml:"testcase"`
}

type xmlTestCase struct {
	Name      string      `xml:"name,attr"`
	Classname string      `xml:"classname,attr"`
	Time      string      `xml:"time,attr"`
	Failure   *xmlDetail  `xml:"failure"`
	Error     *xmlDetail  `xml:"error"`
	Skipped   *xmlSkipped `xml:"skipped"`
}

type xmlDetail struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

type xmlSkipped struct {
	Message *string `xml:"message,attr"`
	Content string  `xml:",chardata"`
}

// Parse parses a JUnit XML document into the normalized aggregate. The root
// may be a testsuites envelope wrapping one or more suites, or a single bare
// testsuite element; both normalize to an ordered suite sequence.
func Parse(xmlText string) (*TestResults, error) {
	suites, err := decodeSuites(xmlText)
	if err != nil {
		return nil, err
	}

	results := &TestResults{
		Suites:      make([]Suite, 0, len(suites)),
		FailedTests: []FailedTest{},
	}

	for _, raw := range suites {
		suite := convertSuite(raw)

		results.Summary.TotalTests += suite.Tests
		results.Summary.TotalFailures += suite.Failures
		results.Summary.TotalErrors += suite.Errors
		results.Summary.TotalSkipped += suite.Skipped
		results.Summary.TotalTime += suite.Time

		for _, tc := range suite.TestCases {
			switch tc.Status {
			case StatusFailed:
				results.FailedTests = append(results.FailedTests, flatten(suite.Name, tc, tc.Failure))
			case StatusError:
				results.FailedTests = append(results.FailedTests, flatten(suite.Name, tc, tc.Error))
			}
		}

		results.Suites = append(results.Suites, suite)
	}

	return results, nil
}

// decodeSuites finds the root element and normalizes the envelope variants
// into a flat suite sequence. A single bare testsuite is not double-wrapped.
func decodeSuites(xmlText string) ([]xmlSuite, error) {
	decoder := xml.NewDecoder(strings.NewReader(xmlText))
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no root element found")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "testsuites":
			var wrapper xmlSuites
			if err := decoder.DecodeElement(&wrapper, &start); err != nil {
				return nil, fmt.Errorf("failed to parse testsuites: %w", err)
			}
			return wrapper.Suites, nil
		case "testsuite":
			var suite xmlSuite
			if err := decoder.DecodeElement(&suite, &start); err != nil {
				return nil, fmt.Errorf("failed to parse testsuite: %w", err)
			}
			return []xmlSuite{suite}, nil
		default:
			return nil, fmt.Errorf("unexpected root element %q", start.Name.Local)
		}
	}
}

func convertSuite(raw xmlSuite) Suite {
	suite := Suite{
		Name:      raw.Name,
		Tests:     parseInt(raw.Tests),
		Failures:  parseInt(raw.Failures),
		Errors:    parseInt(raw.Errors),
		Skipped:   parseInt(raw.Skipped),
		Time:      parseFloat(raw.Time),
		Timestamp: raw.Timestamp,
		TestCases: make([]TestCase, 0, len(raw.TestCases)),
	}
	if suite.Name == "" {
		suite.Name = "Unknown Suite"
	}

	for _, rawCase := range raw.TestCases {
		suite.TestCases = append(suite.TestCases, convertCase(rawCase))
	}

	return suite
}

func convertCase(raw xmlTestCase) TestCase {
	tc := TestCase{
		Name:      raw.Name,
		Classname: raw.Classname,
		Time:      parseFloat(raw.Time),
	}
	if tc.Name == "" {
		tc.Name = "Unknown Test"
	}

	// Status priority: failure, error, skipped, passed. A skipped marker
	// counts even with no content.
	switch {
	case raw.Failure != nil:
		tc.Status = StatusFailed
		tc.Failure = convertDetail(raw.Failure)
	case raw.Error != nil:
		tc.Status = StatusError
		tc.Error = convertDetail(raw.Error)
	case raw.Skipped != nil:
		tc.Status = StatusSkipped
		// A bare marker carries its message as text content; with a message
		// attribute present the attribute wins, even when empty.
		msg := strings.TrimSpace(raw.Skipped.Content)
		if raw.Skipped.Message != nil {
			msg = *raw.Skipped.Message
		}
		tc.Skipped = &msg
	default:
		tc.Status = StatusPassed
	}

	return tc
}

func convertDetail(raw *xmlDetail) *Detail {
	return &Detail{
		Message: raw.Message,
		Type:    raw.Type,
		Details: strings.TrimSpace(raw.Content),
	}
}

func flatten(suiteName string, tc TestCase, detail *Detail) FailedTest {
	ft := FailedTest{
		SuiteName: suiteName,
		TestName:  tc.Name,
		ClassName: tc.Classname,
	}
	if detail != nil {
		ft.Message = detail.Message
		ft.Type = detail.Type
		ft.Details = detail.Details
	}
	return ft
}

// parseInt parses a count attribute, defaulting to 0 on missing or
// unparseable input. Parse failures never propagate.
func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// parseFloat parses a duration attribute in seconds, defaulting to 0
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
