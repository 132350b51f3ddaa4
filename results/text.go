package results

import (
	"regexp"
	"strconv"
)

// signature is one recognizable console summary.
type signature struct {
	name    string
	pattern *regexp.Regexp
	extract func(output string, match []string) ParsedResults
}

// signatures are evaluated in order, the first match wins.
var signatures = []signature{
	{
		name:    "jest",
		pattern: regexp.MustCompile(`Tests:\s+(\d+)\s+failed,\s+(\d+)\s+passed,(?:\s+(\d+)\s+skipped,)?\s+(\d+)\s+total`),
		extract: extractJest,
	},
	{
		name:    "mocha",
		pattern: regexp.MustCompile(`(\d+)\s+passing\s*(?:\(.*?\))?\s*(?:(\d+)\s+failing)?(?:\s*(\d+)\s+pending)?`),
		extract: extractMocha,
	},
	{
		name:    "cypress",
		pattern: regexp.MustCompile(`(\d+)\s+passing.*?(\d+)\s+failing`),
		extract: extractCypress,
	},
	{
		name:    "generic",
		pattern: regexp.MustCompile(`(?i)(\d+).*?test.*?(pass|fail)`),
		extract: extractGeneric,
	},
}

var integerPattern = regexp.MustCompile(`\d+`)

// ParseOutput recognizes test summaries in the combined process output.
//
// When nothing matches a zero valued "Unknown Tests" suite is returned.
func ParseOutput(stdout, stderr string) ParsedResults {
	output := stdout + "\n" + stderr

	for _, sig := range signatures {
		if match := sig.pattern.FindStringSubmatch(output); match != nil {
			return sig.extract(output, match)
		}
	}

	return newParsedResults(FormatUnknown, NewSuite("Unknown Tests", Counts{}, nil))
}

// extractJest ignores the passed group, the summary derives it from the other counters.
func extractJest(_ string, match []string) ParsedResults {
	counts := Counts{
		Tests:    atoi(match[4]),
		Failures: atoi(match[1]),
		Skipped:  atoi(match[3]),
	}
	return newParsedResults(FormatJestOutput, NewSuite("Jest Tests", counts, nil))
}

func extractMocha(_ string, match []string) ParsedResults {
	passed := atoi(match[1])
	failed := atoi(match[2])
	pending := atoi(match[3])

	counts := Counts{
		Tests:    passed + failed + pending,
		Failures: failed,
		Skipped:  pending,
	}
	return newParsedResults(FormatMochaOutput, NewSuite("Mocha Tests", counts, nil))
}

func extractCypress(_ string, match []string) ParsedResults {
	passed := atoi(match[1])
	failed := atoi(match[2])

	counts := Counts{
		Tests:    passed + failed,
		Failures: failed,
	}
	return newParsedResults(FormatCypress, NewSuite("Cypress Tests", counts, nil))
}

// extractGeneric uses the first integer anywhere in the output as the test count.
// It is a rough guess, not a precise count.
func extractGeneric(output string, _ []string) ParsedResults {
	counts := Counts{
		Tests: atoi(integerPattern.FindString(output)),
	}
	return newParsedResults(FormatGeneric, NewSuite("Generic Tests", counts, nil))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
