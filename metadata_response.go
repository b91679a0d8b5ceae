package petrel

import (
	"net"
	"strconv"
)

// Broker is a single endpoint advertised to clients in a Metadata response.
type Broker struct {
	// ID contains the broker ID.
	ID int32
	// Host contains the broker hostname.
	Host string
	// Port contains the broker port.
	Port int32
	// Rack contains the rack of the broker, or null if it has not been
	// assigned to a rack; v1 and up.
	Rack *string
}

// Addr returns the broker address as host:port.
func (b *Broker) Addr() string {
	return net.JoinHostPort(b.Host, strconv.Itoa(int(b.Port)))
}

func (b *Broker) encode(pe packetEncoder, version int16) error {
	pe.putInt32(b.ID)

	if err := pe.putString(b.Host); err != nil {
		return err
	}

	pe.putInt32(b.Port)

	if version >= metadataVersionRack {
		if err := pe.putNullableString(b.Rack); err != nil {
			return err
		}
	}

	return nil
}

func (b *Broker) decode(pd packetDecoder, version int16) (err error) {
	if b.ID, err = pd.getInt32(); err != nil {
		return err
	}

	if b.Host, err = pd.getString(); err != nil {
		return err
	}

	if b.Port, err = pd.getInt32(); err != nil {
		return err
	}

	if version >= metadataVersionRack {
		if b.Rack, err = pd.getNullableString(); err != nil {
			return err
		}
	}

	return nil
}

// PartitionMetadata contains each partition in the topic.
type PartitionMetadata struct {
	// Err contains the partition error, or 0 if there was no error.
	Err KError
	// ID contains the partition index.
	ID int32
	// Leader contains the ID of the leader broker, or -1 if there is none.
	Leader int32
	// LeaderEpoch contains the leader epoch of this partition; v7 and up.
	LeaderEpoch int32
	// Replicas contains the set of all nodes that host this partition.
	Replicas []int32
	// Isr contains the set of nodes that are in sync with the leader for this partition.
	Isr []int32
	// OfflineReplicas contains the set of offline replicas of this partition; v5 and up.
	OfflineReplicas []int32
}

func (p *PartitionMetadata) encode(pe packetEncoder, version int16) error {
	pe.putInt16(int16(p.Err))

	pe.putInt32(p.ID)

	pe.putInt32(p.Leader)

	if version >= metadataVersionLeaderEpoch {
		pe.putInt32(p.LeaderEpoch)
	}

	if err := pe.putInt32Array(p.Replicas); err != nil {
		return err
	}

	if err := pe.putInt32Array(p.Isr); err != nil {
		return err
	}

	if version >= metadataVersionOfflineReplicas {
		if err := pe.putInt32Array(p.OfflineReplicas); err != nil {
			return err
		}
	}

	return nil
}

func (p *PartitionMetadata) decode(pd packetDecoder, version int16) (err error) {
	tmp, err := pd.getInt16()
	if err != nil {
		return err
	}
	p.Err = KError(tmp)

	if p.ID, err = pd.getInt32(); err != nil {
		return err
	}

	if p.Leader, err = pd.getInt32(); err != nil {
		return err
	}

	if version >= metadataVersionLeaderEpoch {
		if p.LeaderEpoch, err = pd.getInt32(); err != nil {
			return err
		}
	}

	if p.Replicas, err = pd.getInt32Array(); err != nil {
		return err
	}

	if p.Isr, err = pd.getInt32Array(); err != nil {
		return err
	}

	if version >= metadataVersionOfflineReplicas {
		if p.OfflineReplicas, err = pd.getInt32Array(); err != nil {
			return err
		}
	}

	return nil
}

// TopicMetadata contains each topic in the response.
type TopicMetadata struct {
	// Err contains the topic error, or 0 if there was no error.
	Err KError
	// Name contains the topic name.
	Name string
	// IsInternal contains a bool where true indicates that the topic is
	// internal to the broker; v1 and up.
	IsInternal bool
	// Partitions contains each partition in the topic.
	Partitions []*PartitionMetadata
	// TopicAuthorizedOperations is a bitfield of the operations the session's
	// principal may perform on this topic; v8 and up when requested, 0 otherwise.
	TopicAuthorizedOperations int32
}

func (t *TopicMetadata) encode(pe packetEncoder, version int16) error {
	pe.putInt16(int16(t.Err))

	if err := pe.putString(t.Name); err != nil {
		return err
	}

	if version >= metadataVersionIsInternal {
		pe.putBool(t.IsInternal)
	}

	if err := pe.putArrayLength(len(t.Partitions)); err != nil {
		return err
	}
	for _, block := range t.Partitions {
		if err := block.encode(pe, version); err != nil {
			return err
		}
	}

	if version >= metadataVersionAuthorizedOps {
		pe.putInt32(t.TopicAuthorizedOperations)
	}

	return nil
}

func (t *TopicMetadata) decode(pd packetDecoder, version int16) (err error) {
	tmp, err := pd.getInt16()
	if err != nil {
		return err
	}
	t.Err = KError(tmp)

	if t.Name, err = pd.getString(); err != nil {
		return err
	}

	if version >= metadataVersionIsInternal {
		if t.IsInternal, err = pd.getBool(); err != nil {
			return err
		}
	}

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if n < 0 {
		return errInvalidArrayLength
	}
	t.Partitions = make([]*PartitionMetadata, n)
	for i := 0; i < n; i++ {
		block := new(PartitionMetadata)
		if err := block.decode(pd, version); err != nil {
			return err
		}
		t.Partitions[i] = block
	}

	if version >= metadataVersionAuthorizedOps {
		if t.TopicAuthorizedOperations, err = pd.getInt32(); err != nil {
			return err
		}
	}

	return nil
}

type MetadataResponse struct {
	// Version defines the protocol version to use for encode and decode
	Version int16
	// ThrottleTimeMs contains the duration in milliseconds for which the
	// request was throttled due to a quota violation, or zero if the request
	// did not violate any quota; v3 and up. This broker does not throttle
	// Metadata, so it always writes 0.
	ThrottleTimeMs int32
	// Brokers contains each broker in the response.
	Brokers []*Broker
	// ClusterID contains the cluster ID that responding broker belongs to; v2
	// and up, null when the cluster has none configured.
	ClusterID *string
	// ControllerID contains the ID of the controller broker, or -1 if it is
	// not known; v1 and up.
	ControllerID int32
	// Topics contains each topic in the response.
	Topics []*TopicMetadata
	// ClusterAuthorizedOperations is a bitfield of the operations the
	// session's principal may perform on the cluster; v8 and up when
	// requested, 0 otherwise.
	ClusterAuthorizedOperations int32
}

func (r *MetadataResponse) setVersion(v int16) {
	r.Version = v
}

func (r *MetadataResponse) encode(pe packetEncoder) error {
	if !r.isValidVersion() {
		return PacketEncodingError{"invalid or unsupported MetadataResponse version field"}
	}

	if r.Version >= metadataVersionThrottleTime {
		pe.putInt32(r.ThrottleTimeMs)
	}

	if err := pe.putArrayLength(len(r.Brokers)); err != nil {
		return err
	}
	for _, broker := range r.Brokers {
		if err := broker.encode(pe, r.Version); err != nil {
			return err
		}
	}

	if r.Version >= metadataVersionClusterID {
		if err := pe.putNullableString(r.ClusterID); err != nil {
			return err
		}
	}

	if r.Version >= metadataVersionControllerID {
		pe.putInt32(r.ControllerID)
	}

	if err := pe.putArrayLength(len(r.Topics)); err != nil {
		return err
	}
	for _, topic := range r.Topics {
		if err := topic.encode(pe, r.Version); err != nil {
			return err
		}
	}

	if r.Version >= metadataVersionAuthorizedOps {
		pe.putInt32(r.ClusterAuthorizedOperations)
	}

	// only the write pass carries a registry, so this records once per response
	if registry := pe.metricRegistry(); registry != nil {
		getOrRegisterHistogram("metadata-response-topic-count", registry).Update(int64(len(r.Topics)))
	}

	return nil
}

func (r *MetadataResponse) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version

	if version >= metadataVersionThrottleTime {
		if r.ThrottleTimeMs, err = pd.getInt32(); err != nil {
			return err
		}
	}

	n, err := pd.getArrayLength()
	if err != nil {
		return err
	}
	if n < 0 {
		return errInvalidArrayLength
	}
	r.Brokers = make([]*Broker, n)
	for i := 0; i < n; i++ {
		broker := new(Broker)
		if err := broker.decode(pd, version); err != nil {
			return err
		}
		r.Brokers[i] = broker
	}

	if version >= metadataVersionClusterID {
		if r.ClusterID, err = pd.getNullableString(); err != nil {
			return err
		}
	}

	if version >= metadataVersionControllerID {
		if r.ControllerID, err = pd.getInt32(); err != nil {
			return err
		}
	}

	n, err = pd.getArrayLength()
	if err != nil {
		return err
	}
	if n < 0 {
		return errInvalidArrayLength
	}
	r.Topics = make([]*TopicMetadata, n)
	for i := 0; i < n; i++ {
		topic := new(TopicMetadata)
		if err := topic.decode(pd, version); err != nil {
			return err
		}
		r.Topics[i] = topic
	}

	if version >= metadataVersionAuthorizedOps {
		if r.ClusterAuthorizedOperations, err = pd.getInt32(); err != nil {
			return err
		}
	}

	return nil
}

func (r *MetadataResponse) key() int16 {
	return apiKeyMetadata
}

func (r *MetadataResponse) version() int16 {
	return r.Version
}

func (r *MetadataResponse) isValidVersion() bool {
	return r.Version >= metadataMinVersion && r.Version <= metadataMaxVersion
}

// testing API

func (r *MetadataResponse) AddBroker(id int32, host string, port int32, rack *string) {
	r.Brokers = append(r.Brokers, &Broker{ID: id, Host: host, Port: port, Rack: rack})
}

func (r *MetadataResponse) AddTopic(topic string, err KError) *TopicMetadata {
	var tmatch *TopicMetadata

	for _, tm := range r.Topics {
		if tm.Name == topic {
			tmatch = tm
			goto foundTopic
		}
	}

	tmatch = new(TopicMetadata)
	tmatch.Name = topic
	r.Topics = append(r.Topics, tmatch)

foundTopic:

	tmatch.Err = err
	return tmatch
}

func (r *MetadataResponse) AddTopicPartition(topic string, partition, brokerID int32, replicas, isr []int32, offline []int32, err KError) {
	tmatch := r.AddTopic(topic, ErrNoError)
	var pmatch *PartitionMetadata

	for _, pm := range tmatch.Partitions {
		if pm.ID == partition {
			pmatch = pm
			goto foundPartition
		}
	}

	pmatch = new(PartitionMetadata)
	pmatch.ID = partition
	tmatch.Partitions = append(tmatch.Partitions, pmatch)

foundPartition:

	pmatch.Leader = brokerID
	pmatch.Replicas = replicas
	if pmatch.Replicas == nil {
		pmatch.Replicas = []int32{}
	}
	pmatch.Isr = isr
	if pmatch.Isr == nil {
		pmatch.Isr = []int32{}
	}
	pmatch.OfflineReplicas = offline
	pmatch.Err = err
}
