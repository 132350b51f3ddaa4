package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-qa-ci-reporter/output"
)

const lastLinesCount = 20

func printLastLinesOfTestLog(logger log.Logger, rawTestOutput, deployDir string) {
	logger.Println()
	logger.Errorf("Last lines of the test output:")
	logger.Printf("%s", stringutil.LastNLines(rawTestOutput, lastLinesCount))
	logger.Println()

	logger.Warnf("If you can't find the reason of the failure in the log, please check the %s.", output.TestLogFileName)
	logger.Infof("%s", colorstring.Magenta(`
The log file is stored in ` + deployDir + `, and its full path
is available in the $` + output.TestLogPathKey + ` environment variable.

If you have the Deploy to Bitrise.io step (after this step),
that will attach the file to your build as an artifact!`))
}
