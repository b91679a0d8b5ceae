package petrel

// Versions of the Metadata API this broker speaks. Requests outside the range
// are rejected up front with ErrUnsupportedVersion semantics; responses are
// always encoded at the version the request arrived with.
const (
	metadataMinVersion int16 = 0
	metadataMaxVersion int16 = 8
)

// Version gates for request fields. Encode and decode both branch on these so
// a body is read and written identically at every version.
const (
	// v0 topic arrays cannot be null; v1 and up distinguish null (all topics)
	// from empty (no topics).
	metadataVersionNullableTopics int16 = 1
	// allow_auto_topic_creation arrived in v4. Before that clients could not
	// opt out, so decoding an older version implies true.
	metadataVersionAllowAutoCreate int16 = 4
	// include_cluster_authorized_operations and
	// include_topic_authorized_operations arrived together in v8.
	metadataVersionIncludeAuthOps int16 = 8
)

// Version gates for response fields.
const (
	metadataVersionControllerID    int16 = 1
	metadataVersionIsInternal      int16 = 1
	metadataVersionRack            int16 = 1
	metadataVersionClusterID       int16 = 2
	metadataVersionThrottleTime    int16 = 3
	metadataVersionOfflineReplicas int16 = 5
	metadataVersionLeaderEpoch     int16 = 7
	metadataVersionAuthorizedOps   int16 = 8
)
