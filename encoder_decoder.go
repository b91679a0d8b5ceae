package petrel

import (
	"fmt"

	"github.com/rcrowley/go-metrics"
)

// Encoder is the interface that wraps the basic Encode method.
// Anything implementing Encoder can be turned into bytes using Kafka's encoding rules.
type encoder interface {
	encode(pe packetEncoder) error
}

// encode takes an Encoder and turns it into bytes while potentially recording metrics.
func encode(e encoder, metricRegistry metrics.Registry) ([]byte, error) {
	if e == nil {
		return nil, nil
	}

	var prepEnc prepEncoder
	var realEnc realEncoder

	err := e.encode(&prepEnc)
	if err != nil {
		return nil, err
	}

	if prepEnc.length < 0 || prepEnc.length > int(MaxResponseSize) {
		return nil, PacketEncodingError{fmt.Sprintf("invalid response size (%d)", prepEnc.length)}
	}

	realEnc.raw = make([]byte, prepEnc.length)
	realEnc.registry = metricRegistry
	err = e.encode(&realEnc)
	if err != nil {
		return nil, err
	}

	return realEnc.raw, nil
}

// VersionedDecoder is the interface that wraps the basic DecodeVersion method.
// Anything implementing VersionedDecoder can be extracted from bytes using Kafka's encoding rules.
type versionedDecoder interface {
	decode(pd packetDecoder, version int16) error
}

// versionedDecode takes bytes and a VersionedDecoder and fills the fields of the decoder from the bytes,
// interpreted using Kafka's encoding rules. No request body is legitimately
// empty, so a nil buffer fails with ErrInsufficientData like any other
// truncated one.
func versionedDecode(buf []byte, in versionedDecoder, version int16, metricRegistry metrics.Registry) error {
	helper := realDecoder{
		raw:      buf,
		registry: metricRegistry,
	}
	err := in.decode(&helper, version)
	if err != nil {
		return err
	}

	if helper.off != len(buf) {
		return PacketDecodingError{
			Info: fmt.Sprintf("invalid length (off=%d, len=%d)", helper.off, len(buf)),
		}
	}

	return nil
}

// protocolBody is the shape shared by versioned Kafka message bodies: they
// encode, they decode at a given version, and they know which API key and
// version range they speak.
type protocolBody interface {
	encoder
	versionedDecoder
	key() int16
	version() int16
	setVersion(int16)
	isValidVersion() bool
}
