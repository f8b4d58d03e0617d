package observe

import (
	"encoding/json"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"blueprint/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
	_logTimeLayout                            = "2006-01-02T15-04-05.000"
)

// SentryHook is an io.Writer fed with the JSON lines of pkg/logger.
// Error, fatal and panic entries are forwarded to Sentry, the rest is ignored.
type SentryHook struct {
	appZone string
	appName string
	hub     *sentry.Hub
	l       *logger.Logger
}

func NewSentryHook(appZone, appName string, isDebug bool, dsn string) (*SentryHook, error) {
	if dsn == "" {
		return nil, errors.New("sentry: no DSN configured")
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout

	return newSentryHook(appZone, appName, sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appZone,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	})
}

func newSentryHook(appZone, appName string, opts sentry.ClientOptions) (*SentryHook, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, errors.Wrap(err, "sentry: init client")
	}

	return &SentryHook{
		appZone: appZone,
		appName: appName,
		hub:     sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

type logEntry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppZone    string `json:"app_zone"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
}

// Write never fails: a line that cannot be parsed is reported through the attached logger.
func (h *SentryHook) Write(p []byte) (n int, err error) {
	var t logEntry
	if err := json.Unmarshal(p, &t); err != nil {
		h.report(errors.Wrap(err, "[SentryHook] json.Unmarshal data"))
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(t.Level)
	if err != nil {
		h.report(errors.Wrap(err, "[SentryHook] parse zap level"))
		return len(p), nil
	}
	if len(t.Message) == 0 {
		return len(p), nil
	}

	switch level {
	case zapcore.ErrorLevel, zapcore.FatalLevel, zapcore.PanicLevel:
		h.hub.CaptureEvent(h.event(t, level))
	}

	return len(p), nil
}

func (h *SentryHook) event(t logEntry, level zapcore.Level) *sentry.Event {
	timestamp, err := time.ParseInLocation(_logTimeLayout, t.Timestamp, time.UTC)
	if err != nil {
		timestamp = time.Now().UTC()
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = t.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = t.Error
	event.Extra["CallerFile"] = t.CallerFile
	event.Extra["CallerLine"] = t.CallerLine
	event.Extra["CallerFunc"] = t.CallerFunc
	event.Extra["Stack"] = t.Stack
	event.Extra["TimeStamp"] = t.Timestamp
	event.Exception = append(event.Exception, sentry.Exception{
		Type:  t.Message,
		Value: t.Error,
	})

	return event
}

func (h *SentryHook) report(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
	}
}

func (h *SentryHook) SetLogger(l *logger.Logger) {
	if l != nil {
		h.l = l
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return h.hub.Flush(_sentryFlushTimeout)
}
