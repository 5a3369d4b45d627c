package logger

import (
	"context"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/golang/glog"
)

type LoggerKeys string

const (
	ActionKey       LoggerKeys = "Action"
	ActionResultKey LoggerKeys = "EventResult"
	RemoteAddrKey   LoggerKeys = "RemoteAddr"

	ActionFailed  LoggerKeys = "failed"
	ActionSuccess LoggerKeys = "success"

	logEventSeparator = "$$"
)

type LogEvent struct {
	Type        string
	Description string
}

func NewLogEventFromString(eventTypeAndDescription string) (logEvent LogEvent) {
	typeAndDesc := strings.Split(eventTypeAndDescription, logEventSeparator)
	sliceLen := len(typeAndDesc)

	if sliceLen > 0 {
		logEvent.Type = typeAndDesc[0]
	}

	if sliceLen > 1 {
		logEvent.Description = typeAndDesc[1]
	}

	return logEvent
}

func NewLogEvent(eventType string, description ...string) LogEvent {
	res := LogEvent{
		Type: eventType,
	}

	if len(description) != 0 {
		res.Description = description[0]
	}

	return res
}

func (l LogEvent) ToString() string {
	if l.Description != "" {
		return fmt.Sprintf("%s%s%s", l.Type, logEventSeparator, l.Description)
	}

	return l.Type
}

type UHCLogger interface {
	V(level int32) UHCLogger
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Error(err error)
	Fatalf(format string, args ...interface{})
}

// Logger is a logger with a background context
var Logger = NewUHCLogger(context.Background())
var _ UHCLogger = &logger{}

type logger struct {
	context   context.Context
	level     int32
	sentryHub *sentry.Hub
}

// NewUHCLogger creates a new logger instance with a default verbosity of 1
func NewUHCLogger(ctx context.Context) UHCLogger {
	return &logger{
		context:   ctx,
		level:     1,
		sentryHub: sentry.GetHubFromContext(ctx),
	}
}

func (l *logger) prepareLogPrefix(format string, args ...interface{}) string {
	orig := fmt.Sprintf(format, args...)
	prefix := ""

	if event, ok := l.context.Value(ActionKey).(string); ok {
		prefix = strings.Join([]string{prefix, "action='", event, "' "}, "")
		if eventStatus, ok := l.context.Value(ActionResultKey).(string); ok {
			prefix = strings.Join([]string{prefix, "result='", eventStatus, "' "}, "")
		}
	}

	if remoteAddr, ok := l.context.Value(RemoteAddrKey).(string); ok {
		prefix = strings.Join([]string{prefix, "src_ip='", remoteAddr, "' "}, "")
	}

	if txid, ok := l.context.Value("txid").(int64); ok {
		prefix = strings.Join([]string{prefix, "tx_id='", fmt.Sprintf("%v", txid), "' "}, "")
	}

	if opid, ok := l.context.Value(OpIDKey).(string); ok {
		prefix = strings.Join([]string{prefix, "opid='", opid, "' "}, "")
	}

	return prefix + orig
}

func (l *logger) V(level int32) UHCLogger {
	return &logger{
		context:   l.context,
		level:     level,
		sentryHub: l.sentryHub,
	}
}

func (l *logger) Infof(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format, args...)
	glog.V(glog.Level(l.level)).Infof(prefixed)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format, args...)
	glog.Warningln(prefixed)
	l.captureSentryEvent(sentry.LevelWarning, format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format, args...)
	glog.Errorln(prefixed)
	l.captureSentryEvent(sentry.LevelError, format, args...)
}

func (l *logger) Error(err error) {
	glog.Error(err)
	if l.sentryHub == nil {
		sentry.CaptureException(err)
		return
	}
	l.sentryHub.CaptureException(err)
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	prefixed := l.prepareLogPrefix(format, args...)
	glog.Fatalln(prefixed)
	l.captureSentryEvent(sentry.LevelFatal, format, args...)
}

func (l *logger) captureSentryEvent(level sentry.Level, format string, args ...interface{}) {
	event := sentry.NewEvent()
	event.Level = level
	event.Message = fmt.Sprintf(format, args...)
	if l.sentryHub == nil {
		sentry.CaptureEvent(event)
		return
	}
	l.sentryHub.CaptureEvent(event)
}
