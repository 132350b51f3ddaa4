package testrunner

import (
	"fmt"
	"regexp"
	"strings"
)

type dangerousPattern struct {
	description string
	pattern     *regexp.Regexp
}

var dangerousPatterns = []dangerousPattern{
	{"recursive forced deletion", regexp.MustCompile(`rm\s+-rf`)},
	{"privilege escalation", regexp.MustCompile(`sudo`)},
	{"piping a curl download into a shell", regexp.MustCompile(`curl.*\|.*sh`)},
	{"piping a wget download into a shell", regexp.MustCompile(`wget.*\|.*sh`)},
	{"eval", regexp.MustCompile(`eval`)},
	{"exec", regexp.MustCompile(`exec`)},
	{"output redirection", regexp.MustCompile(`>`)},
	{"deletion chained with &&", regexp.MustCompile(`&&.*rm`)},
	{"deletion chained with ;", regexp.MustCompile(`;.*rm`)},
}

// ValidateCommand flags shell constructs that should not appear in a test command.
// The check is advisory, the caller decides whether to abort.
func ValidateCommand(testCommand string) error {
	var matches []string
	for _, p := range dangerousPatterns {
		if p.pattern.MatchString(testCommand) {
			matches = append(matches, p.description)
		}
	}

	if len(matches) == 0 {
		return nil
	}

	return fmt.Errorf("test command appears to be dangerous (%s): %s", strings.Join(matches, ", "), testCommand)
}
