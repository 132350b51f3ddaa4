package results

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-version"
)

// Shape is the structural kind of a JSON results document.
type Shape int

// JSON document shapes ...
const (
	ShapeGeneric Shape = iota
	ShapeMocha
	ShapePlaywright
)

// String ...
func (s Shape) String() string {
	switch s {
	case ShapeMocha:
		return "mocha"
	case ShapePlaywright:
		return "playwright"
	default:
		return "generic"
	}
}

// jsonObject is a schema-less JSON object. Reads of missing keys or of values
// with an unexpected type return the zero value.
type jsonObject map[string]interface{}

func asObject(v interface{}) jsonObject {
	m, _ := v.(map[string]interface{})
	return m
}

func (o jsonObject) str(key string) string {
	s, _ := o[key].(string)
	return s
}

func (o jsonObject) num(key string) float64 {
	n, _ := o[key].(float64)
	return n
}

func (o jsonObject) list(key string) []interface{} {
	l, _ := o[key].([]interface{})
	return l
}

func (o jsonObject) has(key string) bool {
	return isTruthy(o[key])
}

// isTruthy: empty strings, zero, false and null are absent values, arrays and objects never are.
func isTruthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		return value != ""
	default:
		return true
	}
}

// ClassifyJSON decides how a decoded JSON value should be parsed.
//
// A suites or tests field selects the Mocha/Cypress shape, stats together with results
// selects the Playwright shape, anything else is generic. Values that are not objects are generic.
func ClassifyJSON(doc interface{}) Shape {
	obj := asObject(doc)
	switch {
	case obj.has("suites") || obj.has("tests"):
		return ShapeMocha
	case obj.has("stats") && obj.has("results"):
		return ShapePlaywright
	default:
		return ShapeGeneric
	}
}

// ParseJSON parses a JSON results document of any supported shape.
//
// Only a document that is not valid JSON is an error.
func ParseJSON(content []byte) (ParsedResults, error) {
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return ParsedResults{}, fmt.Errorf("failed to parse JSON results: %w", err)
	}

	var parsed ParsedResults
	switch ClassifyJSON(doc) {
	case ShapeMocha:
		parsed = parseMochaJSON(asObject(doc))
	case ShapePlaywright:
		parsed = parsePlaywrightJSON(asObject(doc))
	default:
		parsed = parseGenericJSON(asObject(doc))
	}

	parsed.Reporter = detectReporter(asObject(doc))

	return parsed, nil
}

// parseMochaJSON reads the top-level suites, or the document itself as the only suite.
// A suites or tests value that is not an array holds nothing.
func parseMochaJSON(doc jsonObject) ParsedResults {
	var suites []TestSuite
	if doc.has("suites") {
		for _, suite := range doc.list("suites") {
			suites = append(suites, mochaSuiteResult(asObject(suite)))
		}
	} else {
		suites = append(suites, mochaSuiteResult(doc))
	}

	return newParsedResults(FormatMochaJSON, suites...)
}

// mochaSuiteResult flattens nested suites into the parent's case list and derives the counters.
func mochaSuiteResult(suite jsonObject) TestSuite {
	var cases []TestCase
	for _, test := range suite.list("tests") {
		cases = append(cases, mochaCase(asObject(test)))
	}
	for _, nested := range suite.list("suites") {
		cases = append(cases, mochaSuiteResult(asObject(nested)).TestCases...)
	}

	return NewDerivedSuite(firstNonEmpty(suite.str("title"), suite.str("name"), "Unknown Suite"), cases)
}

func mochaCase(test jsonObject) TestCase {
	status := Status(test.str("state"))
	if status == "" {
		switch {
		case test.has("pass"):
			status = StatusPassed
		case test.has("pending"):
			status = StatusSkipped
		default:
			status = StatusFailed
		}
	}

	opts := []CaseOption{
		WithTime(test.num("duration") / 1000),
		WithStatus(status),
	}

	if testErr, ok := mochaError(test); ok {
		opts = append(opts, WithFailure(Detail{
			Message:    firstNonEmpty(testErr.str("message"), "Test failed"),
			Type:       firstNonEmpty(testErr.str("name"), "Error"),
			StackTrace: testErr.str("stack"),
		}))
	}

	return NewTestCase(firstNonEmpty(test.str("title"), test.str("name"), "Unknown Test"), opts...)
}

// mochaError returns err, or error when err is absent or an empty object.
func mochaError(test jsonObject) (jsonObject, bool) {
	for _, key := range []string{"err", "error"} {
		value := test[key]
		if !isTruthy(value) {
			continue
		}

		obj, isObject := value.(map[string]interface{})
		if !isObject {
			return nil, true
		}
		errObj := jsonObject(obj)
		if errObj.str("message") == "" && errObj.str("name") == "" && errObj.str("stack") == "" {
			continue
		}
		return errObj, true
	}
	return nil, false
}

const playwrightSuiteName = "Playwright Tests"

func parsePlaywrightJSON(doc jsonObject) ParsedResults {
	var cases []TestCase
	for _, suite := range doc.list("suites") {
		for _, spec := range asObject(suite).list("specs") {
			specObj := asObject(spec)
			for _, test := range specObj.list("tests") {
				cases = append(cases, playwrightCase(specObj, asObject(test)))
			}
		}
	}

	return newParsedResults(FormatPlaywright, NewDerivedSuite(playwrightSuiteName, cases))
}

// playwrightCase takes the status from the outcome as is, without a default, and the timing from the first result.
func playwrightCase(spec, test jsonObject) TestCase {
	opts := []CaseOption{
		WithStatus(Status(test.str("outcome"))),
	}

	if testResults := test.list("results"); len(testResults) > 0 {
		first := asObject(testResults[0])
		opts = append(opts, WithTime(first.num("duration")/1000))

		if first.has("error") {
			resultErr := asObject(first["error"])
			opts = append(opts, WithFailure(Detail{
				Message:    firstNonEmpty(resultErr.str("message"), "Test failed"),
				Type:       "Error",
				StackTrace: resultErr.str("stack"),
			}))
		}
	}

	return NewTestCase(firstNonEmpty(test.str("title"), spec.str("title")), opts...)
}

const genericSuiteName = "Test Results"

func parseGenericJSON(doc jsonObject) ParsedResults {
	counts := Counts{
		Tests:    int(firstNumber(doc, "total")),
		Failures: int(firstNumber(doc, "failures", "failed")),
		Errors:   int(firstNumber(doc, "errors")),
		Skipped:  int(firstNumber(doc, "skipped", "pending")),
		Time:     firstNumber(doc, "duration", "time"),
	}

	return newParsedResults(FormatGenericJSON, NewSuite(genericSuiteName, counts, nil))
}

// firstNumber returns the first non-zero numeric field among keys.
func firstNumber(doc jsonObject, keys ...string) float64 {
	for _, key := range keys {
		if n := doc.num(key); n != 0 {
			return n
		}
	}
	return 0
}

func detectReporter(doc jsonObject) *Reporter {
	var reporter Reporter
	var rawVersion string

	if v := asObject(doc["config"]).str("version"); v != "" {
		reporter.Name = "playwright"
		rawVersion = v
	} else if v := asObject(asObject(doc["meta"])["mochawesome"]).str("version"); v != "" {
		reporter.Name = "mochawesome"
		rawVersion = v
	} else {
		return nil
	}

	v, err := version.NewVersion(rawVersion)
	if err != nil {
		return nil
	}
	reporter.Version = v

	return &reporter
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
