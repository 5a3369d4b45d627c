package server

import (
	"net"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/golang/glog"
)

type Server interface {
	Listen() (net.Listener, error)
	Serve(net.Listener)
	Start()
	Stop()
}

func check(err error, msg string, sentryTimeout time.Duration) {
	if err != nil && err.Error() != "http: Server closed" {
		glog.Errorf("%s: %s", msg, err)
		sentry.CaptureException(err)
		sentry.Flush(sentryTimeout)
		glog.Fatalf("%s: %s", msg, err)
	}
}
