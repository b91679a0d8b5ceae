package petrel

import (
	"context"
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
)

// ConnContext carries the per-connection facts the network layer established
// before any request body reaches the handler.
type ConnContext struct {
	// Principal the connection authenticated as.
	Principal Principal
	// ListenerName names the listener the connection arrived through. Only
	// brokers advertising an address on that listener appear in responses.
	ListenerName string
}

// MetadataHandler serves Metadata requests for a broker. The network layer
// owns framing and correlation: it hands over the raw request body plus the
// version from the request header, and sends back the body bytes returned
// here. A single handler serves every connection concurrently.
type MetadataHandler struct {
	conf       *Config
	cache      MetadataCache
	authorizer Authorizer
	resolver   *metadataResolver

	requestRate      metrics.Meter
	requestSize      metrics.Histogram
	requestLatency   metrics.Histogram
	responseSize     metrics.Histogram
	requestsInFlight metrics.Counter
}

// NewMetadataHandler creates a handler over the broker's cluster view, topic
// creation path and authorizer. A nil conf gets the NewConfig defaults.
func NewMetadataHandler(conf *Config, cache MetadataCache, creator TopicCreator, authorizer Authorizer) (*MetadataHandler, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if cache == nil {
		return nil, ConfigurationError("cache must not be nil")
	}
	if creator == nil {
		return nil, ConfigurationError("creator must not be nil")
	}
	if authorizer == nil {
		return nil, ConfigurationError("authorizer must not be nil")
	}

	h := &MetadataHandler{
		conf:       conf,
		cache:      cache,
		authorizer: authorizer,
		resolver:   newMetadataResolver(conf, cache, creator, authorizer),
	}

	h.requestRate = metrics.GetOrRegisterMeter("metadata-request-rate", conf.MetricRegistry)
	h.requestSize = getOrRegisterHistogram("metadata-request-size", conf.MetricRegistry)
	h.requestLatency = getOrRegisterHistogram("metadata-request-time-in-ms", conf.MetricRegistry)
	h.responseSize = getOrRegisterHistogram("metadata-response-size", conf.MetricRegistry)
	h.requestsInFlight = metrics.GetOrRegisterCounter("metadata-requests-in-flight", conf.MetricRegistry)

	return h, nil
}

// Handle serves one Metadata request body at the given version and returns the
// response body to send back. Exactly one of the response and the error is
// non-nil. An error means nothing was resolved (unsupported version, malformed
// body, or ctx expiring mid-request) and is the network layer's to deal with
// at the framing level; per-topic failures instead come back inside a healthy
// response.
func (h *MetadataHandler) Handle(ctx context.Context, conn *ConnContext, version int16, body []byte) ([]byte, error) {
	if version < metadataMinVersion || version > metadataMaxVersion {
		return nil, PacketDecodingError{fmt.Sprintf("unsupported Metadata version %d", version)}
	}

	h.requestRate.Mark(1)
	h.requestSize.Update(int64(len(body)))
	h.requestsInFlight.Inc(1)
	defer h.requestsInFlight.Dec(1)
	start := time.Now()

	req := &MetadataRequest{}
	if err := versionedDecode(body, req, version, h.conf.MetricRegistry); err != nil {
		return nil, err
	}

	DebugLogger.Printf("petrel: metadata v%d from %s: %d topic(s), list-all %t\n",
		version, conn.Principal, len(req.Topics), req.ListAllTopics())

	topics, err := h.resolver.resolveTopics(ctx, req, conn.Principal)
	if err != nil {
		return nil, err
	}

	buf, err := encode(h.assembleResponse(req, conn, topics), h.conf.MetricRegistry)
	if err != nil {
		return nil, err
	}

	h.responseSize.Update(int64(len(buf)))
	h.requestLatency.Update(int64(time.Since(start) / time.Millisecond))

	return buf, nil
}
