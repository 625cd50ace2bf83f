// Command stockpile inspects item catalogues and replays inventory
// transaction scenarios against the engine.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("stockpile failed")
		os.Exit(exitCode(err))
	}
}
