package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/testrunner"
)

// Parser ...
type Parser interface {
	Parse(runResult testrunner.Result) (ParsedResults, error)
}

type parser struct {
	logger   log.Logger
	readFile func(name string) ([]byte, error)
}

// NewParser ...
func NewParser(logger log.Logger) Parser {
	return &parser{
		logger:   logger,
		readFile: os.ReadFile,
	}
}

// Parse picks the results file parser by extension and falls back to the process output
// when there is no file, the file cannot be read or its extension is not supported.
// A results file that cannot be parsed at all is returned as an error.
func (p *parser) Parse(runResult testrunner.Result) (ParsedResults, error) {
	p.logger.Infof("Parsing test results")

	parsed, err := p.parse(runResult)
	if err != nil {
		p.logger.Errorf("%s", err)
		return ParsedResults{}, err
	}

	parsed.RawOutput = runResult.Stdout
	parsed.RawError = runResult.Stderr

	s := parsed.Summary
	p.logger.Printf("Test summary (%s): %d total, %d passed, %d failed, %d skipped", parsed.Format, s.Total, s.Passed, s.Failed, s.Skipped)
	if parsed.Reporter != nil {
		p.logger.Debugf("Reporter: %s", parsed.Reporter)
	}

	return parsed, nil
}

func (p *parser) parse(runResult testrunner.Result) (ParsedResults, error) {
	if runResult.ResultsPath == "" {
		p.logger.Printf("No results file, parsing the test output")
		return ParseOutput(runResult.Stdout, runResult.Stderr), nil
	}

	content, err := p.readFile(runResult.ResultsPath)
	if err != nil {
		p.logger.Warnf("Failed to read results file (%s): %s", runResult.ResultsPath, err)
		return ParseOutput(runResult.Stdout, runResult.Stderr), nil
	}

	switch strings.ToLower(filepath.Ext(runResult.ResultsPath)) {
	case ".xml":
		p.logger.Printf("Parsing JUnit XML results: %s", runResult.ResultsPath)
		parsed, err := ParseJUnitXML(content)
		if err != nil {
			return ParsedResults{}, fmt.Errorf("%s: %w", runResult.ResultsPath, err)
		}
		return parsed, nil
	case ".json":
		p.logger.Printf("Parsing JSON results: %s", runResult.ResultsPath)
		parsed, err := ParseJSON(content)
		if err != nil {
			return ParsedResults{}, fmt.Errorf("%s: %w", runResult.ResultsPath, err)
		}
		return parsed, nil
	default:
		p.logger.Warnf("Unsupported results file format: %s", runResult.ResultsPath)
		return ParseOutput(runResult.Stdout, runResult.Stderr), nil
	}
}
