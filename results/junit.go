package results

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// xmlElement is a schema-less XML element: every attribute, text node and child is kept.
type xmlElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Text     string       `xml:",chardata"`
	Children []xmlElement `xml:",any"`
}

func (e xmlElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e xmlElement) attrOr(name, fallback string) string {
	if v, ok := e.attr(name); ok && v != "" {
		return v
	}
	return fallback
}

func (e xmlElement) text() string {
	return strings.TrimSpace(e.Text)
}

func (e xmlElement) child(name string) (xmlElement, bool) {
	for _, c := range e.Children {
		if c.XMLName.Local == name {
			return c, true
		}
	}
	return xmlElement{}, false
}

func (e xmlElement) children(name string) []xmlElement {
	var elements []xmlElement
	for _, c := range e.Children {
		if c.XMLName.Local == name {
			elements = append(elements, c)
		}
	}
	return elements
}

// ParseJUnitXML parses a JUnit style XML report.
//
// The document may hold a testsuites wrapper, a single testsuite or several top-level
// testsuite elements. Suite counters are read from the suite attributes, never recomputed.
// A document without any root element, or with an unrelated root, yields no suites.
func ParseJUnitXML(content []byte) (ParsedResults, error) {
	roots, err := decodeXMLRoots(content)
	if err != nil {
		return ParsedResults{}, fmt.Errorf("failed to parse JUnit XML: %w", err)
	}

	var suiteElements []xmlElement
	for _, root := range roots {
		switch root.XMLName.Local {
		case "testsuites":
			suiteElements = append(suiteElements, root.children("testsuite")...)
		case "testsuite":
			suiteElements = append(suiteElements, root)
		}
	}

	suites := make([]TestSuite, 0, len(suiteElements))
	for _, element := range suiteElements {
		suites = append(suites, junitSuite(element))
	}

	return newParsedResults(FormatJUnitXML, suites...), nil
}

func decodeXMLRoots(content []byte) ([]xmlElement, error) {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	var roots []xmlElement
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		var root xmlElement
		if err := decoder.DecodeElement(&root, &start); err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	return roots, nil
}

func junitSuite(element xmlElement) TestSuite {
	caseElements := element.children("testcase")
	cases := make([]TestCase, 0, len(caseElements))
	for _, caseElement := range caseElements {
		cases = append(cases, junitCase(caseElement))
	}

	counts := Counts{
		Tests:    parseCount(element.attrOr("tests", "0")),
		Failures: parseCount(element.attrOr("failures", "0")),
		Errors:   parseCount(element.attrOr("errors", "0")),
		Skipped:  parseCount(element.attrOr("skipped", "0")),
		Time:     parseSeconds(element.attrOr("time", "0")),
	}

	return NewSuite(element.attrOr("name", "Unknown Suite"), counts, cases)
}

// junitCase checks failure, error and skipped children in this order, each one
// overriding the status set by the previous one.
func junitCase(element xmlElement) TestCase {
	opts := []CaseOption{
		WithTime(parseSeconds(element.attrOr("time", "0"))),
	}
	if classname, ok := element.attr("classname"); ok {
		opts = append(opts, WithClassname(classname))
	}

	if failure, ok := element.child("failure"); ok {
		opts = append(opts,
			WithStatus(StatusFailed),
			WithFailure(junitDetail(failure, "Test failed", "AssertionError")),
		)
	}

	if errElement, ok := element.child("error"); ok {
		opts = append(opts,
			WithStatus(StatusError),
			WithError(junitDetail(errElement, "Test error", "Error")),
		)
	}

	if _, ok := element.child("skipped"); ok {
		opts = append(opts, WithStatus(StatusSkipped))
	}

	if out, ok := element.child("system-out"); ok {
		opts = append(opts, WithSystemOut(out.text()))
	}
	if out, ok := element.child("system-err"); ok {
		opts = append(opts, WithSystemErr(out.text()))
	}

	return NewTestCase(element.attrOr("name", "Unknown Test"), opts...)
}

func junitDetail(element xmlElement, fallbackMessage, fallbackType string) Detail {
	text := element.text()

	message := element.attrOr("message", text)
	if message == "" {
		message = fallbackMessage
	}

	return Detail{
		Message:    message,
		Type:       element.attrOr("type", fallbackType),
		StackTrace: text,
	}
}

func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
	if err != nil {
		return 0
	}
	return f
}
