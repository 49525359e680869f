package arbor

import (
	"os"

	"github.com/charmbracelet/log"
)

// pkgLogger receives lifecycle and layout diagnostics. The default only lets
// warnings and errors through, to stderr.
var pkgLogger = newDefaultLogger()

func newDefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel, Prefix: "arbor"})
}

// SetLogger replaces the logger used by the package. nil restores the
// default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDefaultLogger()
	}
	pkgLogger = l
}

// Logger returns the logger used by the package.
func Logger() *log.Logger {
	return pkgLogger
}

func logger() *log.Logger {
	return pkgLogger
}
