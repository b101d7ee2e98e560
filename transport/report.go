package transport

import "time"

// Report describes one finished command, successful or not.
type Report struct {
	RequestType string
	Path        string
	Bytes       int
	Ack         string
	Duration    time.Duration
	Err         error
}

type Observer interface {
	Observe(Report)
}

type ObserverFunc func(Report)

func (f ObserverFunc) Observe(r Report) {
	f(r)
}
