package petrel

// Kafka protocol API key for Metadata.
const apiKeyMetadata int16 = 3

type MetadataRequest struct {
	// Version defines the protocol version to use for encode and decode
	Version int16
	// Topics contains the topics to fetch metadata for. A nil slice at v1 and
	// up asks for every topic in the cluster; v0 expresses that with an empty
	// array instead (see ListAllTopics).
	Topics []string
	// AllowAutoTopicCreation contains a bool where if true, the broker may
	// auto-create topics named in the request which do not already exist, if
	// it is configured to do so. Decodes as true below v4, where clients could
	// not opt out.
	AllowAutoTopicCreation bool
	// IncludeClusterAuthorizedOperations asks for the operations the session's
	// principal may perform on the cluster; v8 and up.
	IncludeClusterAuthorizedOperations bool
	// IncludeTopicAuthorizedOperations asks for the operations the session's
	// principal may perform on each returned topic; v8 and up.
	IncludeTopicAuthorizedOperations bool
}

func (r *MetadataRequest) setVersion(v int16) {
	r.Version = v
}

func (r *MetadataRequest) encode(pe packetEncoder) error {
	if !r.isValidVersion() {
		return PacketEncodingError{"invalid or unsupported MetadataRequest version field"}
	}

	if r.Topics == nil && r.Version >= metadataVersionNullableTopics {
		pe.putInt32(-1)
	} else if err := pe.putStringArray(r.Topics); err != nil {
		return err
	}

	if r.Version >= metadataVersionAllowAutoCreate {
		pe.putBool(r.AllowAutoTopicCreation)
	}

	if r.Version >= metadataVersionIncludeAuthOps {
		pe.putBool(r.IncludeClusterAuthorizedOperations)
		pe.putBool(r.IncludeTopicAuthorizedOperations)
	}

	return nil
}

func (r *MetadataRequest) decode(pd packetDecoder, version int16) error {
	r.Version = version

	size, err := pd.getArrayLength()
	if err != nil {
		return err
	}

	if size == -1 {
		// null means all topics, but only once the encoding can express it
		if r.Version < metadataVersionNullableTopics {
			return errInvalidArrayLength
		}
	} else if size > 0 || r.Version >= metadataVersionNullableTopics {
		r.Topics = make([]string, size)
	}
	for i := range r.Topics {
		topic, err := pd.getString()
		if err != nil {
			return err
		}
		r.Topics[i] = topic
	}

	if r.Version >= metadataVersionAllowAutoCreate {
		r.AllowAutoTopicCreation, err = pd.getBool()
		if err != nil {
			return err
		}
	} else {
		r.AllowAutoTopicCreation = true
	}

	if r.Version >= metadataVersionIncludeAuthOps {
		r.IncludeClusterAuthorizedOperations, err = pd.getBool()
		if err != nil {
			return err
		}
		r.IncludeTopicAuthorizedOperations, err = pd.getBool()
		if err != nil {
			return err
		}
	}

	if registry := pd.metricRegistry(); registry != nil {
		getOrRegisterHistogram("metadata-request-topic-count", registry).Update(int64(len(r.Topics)))
	}

	return nil
}

func (r *MetadataRequest) key() int16 {
	return apiKeyMetadata
}

func (r *MetadataRequest) version() int16 {
	return r.Version
}

func (r *MetadataRequest) isValidVersion() bool {
	return r.Version >= metadataMinVersion && r.Version <= metadataMaxVersion
}

// ListAllTopics reports whether the request asks for every topic in the
// cluster rather than a named set. v0 had no null array encoding, so an empty
// topic list is the only way to ask for everything; v1 and up reserve null for
// "all" and treat a present-but-empty list as "none".
func (r *MetadataRequest) ListAllTopics() bool {
	if r.Version < metadataVersionNullableTopics {
		return len(r.Topics) == 0
	}
	return r.Topics == nil
}
