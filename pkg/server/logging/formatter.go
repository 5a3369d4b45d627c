package logging

import (
	"encoding/json"
	"net/http"
)

// LoggingThreshold is the glog verbosity at which request/response logs are emitted
const LoggingThreshold = int32(1)

type ResponseInfo struct {
	Header  http.Header
	Body    []byte
	Status  int
	Elapsed string
}

type LogFormatter interface {
	FormatRequestLog(r *http.Request) (string, error)
	FormatResponseLog(info *ResponseInfo) (string, error)
}

func NewJSONLogFormatter() LogFormatter {
	return &jsonLogFormatter{}
}

type jsonLogFormatter struct{}

type requestLog struct {
	Kind      string      `json:"kind"`
	Method    string      `json:"method"`
	Path      string      `json:"path"`
	Query     string      `json:"query,omitempty"`
	RemoteIP  string      `json:"remote_ip"`
	UserAgent string      `json:"user_agent,omitempty"`
	Header    http.Header `json:"header,omitempty"`
}

type responseLog struct {
	Kind    string      `json:"kind"`
	Status  int         `json:"status"`
	Elapsed string      `json:"elapsed"`
	Header  http.Header `json:"header,omitempty"`
}

// headers stripped from logs, they carry credentials
var sensitiveHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "Private-Token"}

func redactHeaders(h http.Header) http.Header {
	redacted := h.Clone()
	for _, header := range sensitiveHeaders {
		if redacted.Get(header) != "" {
			redacted.Set(header, "<redacted>")
		}
	}
	return redacted
}

func (f *jsonLogFormatter) FormatRequestLog(r *http.Request) (string, error) {
	log := &requestLog{
		Kind:      "Request",
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		RemoteIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Header:    redactHeaders(r.Header),
	}
	data, err := json.Marshal(log)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f *jsonLogFormatter) FormatResponseLog(info *ResponseInfo) (string, error) {
	log := &responseLog{
		Kind:    "Response",
		Status:  info.Status,
		Elapsed: info.Elapsed,
		Header:  redactHeaders(info.Header),
	}
	data, err := json.Marshal(log)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
