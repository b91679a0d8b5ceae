/*
Package petrel implements the broker-side metadata plane of the Petrel
streaming platform: decoding Metadata requests off the Kafka wire protocol,
resolving the named topics against the broker's view of the cluster
(creating missing topics on demand where permitted), and encoding versioned
Metadata responses that standard Kafka clients can consume.

The entry point is MetadataHandler, which a broker's network layer feeds
with raw request bodies. Everything below it (the metadata cache, the topic
creator, the authorizer) is an interface so that the surrounding broker can
plug in its own control plane.

Metrics are exposed through https://github.com/rcrowley/go-metrics library
in a local registry.

Handler related metrics:

	+----------------------------------------------+------------+---------------------------------------------------------------+
	| Name                                         | Type       | Description                                                   |
	+----------------------------------------------+------------+---------------------------------------------------------------+
	| metadata-request-rate                        | meter      | Metadata requests/second served                               |
	| metadata-request-size                        | histogram  | Distribution of the request body size in bytes                |
	| metadata-request-topic-count                 | histogram  | Distribution of the number of topics named per request        |
	| metadata-request-time-in-ms                  | histogram  | Distribution of the request handling time in ms               |
	| metadata-response-size                       | histogram  | Distribution of the response body size in bytes               |
	| metadata-response-topic-count                | histogram  | Distribution of the number of topics returned per response    |
	| metadata-requests-in-flight                  | counter    | The current number of in-flight metadata requests             |
	+----------------------------------------------+------------+---------------------------------------------------------------+

Topic autocreation related metrics:

	+----------------------------------------------+------------+---------------------------------------------------------------+
	| Name                                         | Type       | Description                                                   |
	+----------------------------------------------+------------+---------------------------------------------------------------+
	| topic-autocreate-rate                        | meter      | Topic creations issued/second                                 |
	| topic-autocreate-rate-for-topic-<topic>      | meter      | Topic creations issued/second for a given topic               |
	| topic-autocreate-time-in-ms                  | histogram  | Distribution of the time a creation attempt took in ms        |
	+----------------------------------------------+------------+---------------------------------------------------------------+
*/
package petrel

import (
	"io"
	"log"
)

var (
	// Logger is the instance of a StdLogger interface that Petrel writes metadata
	// plane events to. By default it is set to discard all log messages via io.Discard,
	// but you can set it to redirect wherever you want.
	Logger StdLogger = log.New(io.Discard, "[petrel] ", log.LstdFlags)

	// PanicHandler is called for handling panics recovered from topic creation
	// goroutines spawned internally to the library (and thus not recoverable by the
	// caller's goroutine). The panic is always recovered and logged so that one
	// misbehaving topic cannot take the broker down; set PanicHandler if you want
	// to be notified as well. Defaults to nil.
	PanicHandler func(interface{})

	// MaxRequestSize is the maximum size (in bytes) of any request body that Petrel
	// will attempt to decode. A request advertising an array larger than this value
	// fails decoding with a PacketDecodingError to protect the broker from running
	// out of memory. The default of 100 MiB is aligned with Kafka's default
	// `socket.request.max.bytes`.
	MaxRequestSize int32 = 100 * 1024 * 1024

	// MaxResponseSize is the maximum size (in bytes) of any response that Petrel
	// will attempt to encode. Trying to build a response larger than this will
	// result in a PacketEncodingError rather than an oversized frame on the wire.
	MaxResponseSize int32 = 100 * 1024 * 1024
)

// StdLogger is used to log error messages.
type StdLogger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

type debugLogger struct{}

func (d *debugLogger) Print(v ...interface{}) {
	Logger.Print(v...)
}

func (d *debugLogger) Printf(format string, v ...interface{}) {
	Logger.Printf(format, v...)
}

func (d *debugLogger) Println(v ...interface{}) {
	Logger.Println(v...)
}

// DebugLogger is the instance of a StdLogger that Petrel writes more verbose
// debug information to. By default it is set to redirect all debug to the
// default Logger above, but you can set it to something else if you want
// debug to have its own log level of output.
var DebugLogger StdLogger = &debugLogger{}
