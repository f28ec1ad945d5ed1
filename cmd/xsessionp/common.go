package main

import (
	"flag"
	"log"

	"github.com/crashvb/xsessionp/internal/logging"
	"github.com/crashvb/xsessionp/internal/session"
	"github.com/crashvb/xsessionp/internal/x11"
)

// verbosityFlags registers the shared logging flags on a flag set and
// returns a resolver to call after parsing.
func verbosityFlags(fs *flag.FlagSet) func() int {
	quiet := fs.Bool("quiet", false, "suppress informational output")
	debug := fs.Bool("debug", false, "emit debug output")
	return func() int {
		switch {
		case *debug:
			return logging.Debug
		case *quiet:
			return logging.Quiet
		default:
			return logging.Default
		}
	}
}

// connectSession opens the X display and wraps it in a session. The
// returned cleanup closes the display connection.
func connectSession(verbosity int) (*session.Session, func(), error) {
	debugEnabled := logging.Setup(verbosity)

	connection, err := x11.NewConnection()
	if err != nil {
		return nil, nil, err
	}
	sess := session.New(connection)
	if debugEnabled {
		sess.SetDebug(func(format string, args ...any) {
			log.Printf("session: debug: "+format, args...)
		})
	}
	return sess, connection.Close, nil
}
