package testrunner

import (
	"os"
	"path/filepath"
	"strings"
)

// conventionalResultPaths are tried in order when no results path is given.
var conventionalResultPaths = []string{
	// JUnit XML
	"test-results.xml",
	"junit.xml",
	"test-output.xml",
	"cypress/results/output.xml",
	"test-results/junit.xml",
	"reports/junit.xml",

	// JSON
	"test-results.json",
	"cypress/results/output.json",
	"playwright-report/results.json",
	"test-results/results.json",

	// Cypress
	"cypress/results/mochawesome.json",
	"mochawesome-report/mochawesome.json",

	// Playwright
	"test-results/results.xml",
	"playwright-report/results.xml",
}

// conventionalResultDirs are scanned for any xml or json file after the fixed paths.
var conventionalResultDirs = []string{
	"test-results",
	"cypress/results",
	"playwright-report",
	"reports",
}

func (r *runner) resolveResultsPath(hint, dir string) string {
	pth := hint
	if pth == "" {
		pth = r.findResultsFile(dir)
		if pth == "" {
			r.logger.Warnf("No test results file found, the test output will be parsed")
			return ""
		}
	}

	if !r.isFile(resolve(dir, pth)) {
		r.logger.Warnf("Test results file not found at: %s", pth)
		return ""
	}

	r.logger.Printf("Test results found at: %s", pth)

	return resolve(dir, pth)
}

func (r *runner) findResultsFile(dir string) string {
	for _, pth := range conventionalResultPaths {
		if r.isFile(resolve(dir, pth)) {
			r.logger.Printf("Found test results file: %s", pth)
			return pth
		}
	}

	for _, resultDir := range conventionalResultDirs {
		entries, err := os.ReadDir(resolve(dir, resultDir))
		if err != nil {
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".json") {
				pth := filepath.Join(resultDir, name)
				r.logger.Printf("Found test results file: %s", pth)
				return pth
			}
		}
	}

	return ""
}

func (r *runner) isFile(pth string) bool {
	exists, err := r.pathChecker.IsPathExists(pth)
	if err != nil || !exists {
		return false
	}

	isDir, err := r.pathChecker.IsDirExists(pth)
	return err == nil && !isDir
}

func resolve(dir, pth string) string {
	if dir == "" || filepath.IsAbs(pth) {
		return pth
	}
	return filepath.Join(dir, pth)
}
