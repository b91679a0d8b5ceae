package petrel

import "github.com/rcrowley/go-metrics"

// PacketDecoder is the interface providing helpers for reading with Kafka's encoding rules.
// Types implementing Decoder only need to worry about calling methods like GetString,
// not about how a string is represented in Kafka.
type packetDecoder interface {
	// Primitives
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getBool() (bool, error)
	getArrayLength() (int, error)

	// Collections
	getString() (string, error)
	getNullableString() (*string, error)
	getStringArray() ([]string, error)
	getInt32Array() ([]int32, error)

	// Misc
	remaining() int

	// To record metrics when provided
	metricRegistry() metrics.Registry
}
