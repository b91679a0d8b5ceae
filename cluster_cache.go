package petrel

import (
	"sort"
	"sync"
)

// HostPort is one advertised address of a broker.
type HostPort struct {
	Host string
	Port int32
}

// BrokerEndpoint describes one live broker of the cluster and the addresses it
// advertises per listener.
type BrokerEndpoint struct {
	ID int32
	// Rack the broker sits in, or nil if it has not been assigned one.
	Rack *string
	// Listeners maps listener name (e.g. "PLAINTEXT", "INTERNAL") to the
	// address clients connecting through that listener should use.
	Listeners map[string]HostPort
}

// ClusterPartition is one partition of a topic as the cluster sees it.
type ClusterPartition struct {
	ID int32
	// Leader is the broker ID of the current leader, or -1 while an election
	// is in progress.
	Leader      int32
	LeaderEpoch int32
	// Replicas is the assignment in preference order. The order is meaningful
	// and is never changed.
	Replicas []int32
	Isr      []int32
	Offline  []int32
}

// ClusterTopic is a topic as the cluster sees it.
type ClusterTopic struct {
	Name       string
	Internal   bool
	Partitions []ClusterPartition
}

// MetadataCache is this broker's eventually consistent view of cluster state.
// Implementations must be safe for concurrent use. A miss here is not
// authoritative: the topic may already exist on the controller and simply not
// have reached this broker yet.
type MetadataCache interface {
	// AllTopics returns every topic in the view, sorted by name.
	AllTopics() []*ClusterTopic

	// Topic returns the named topic, or nil if the view has no such topic.
	Topic(name string) *ClusterTopic

	// Brokers returns every live broker, sorted by ID.
	Brokers() []*BrokerEndpoint

	// ControllerID returns the broker ID of the current controller, or -1 if
	// no controller is known.
	ControllerID() int32
}

// ClusterCache is an in-memory MetadataCache, fed by whatever keeps this
// broker in sync with the controller (a metadata log follower in production,
// the test directly in tests). Mutators return the cache so setup can be
// chained; readers hand out deep copies so callers can never see a later
// update mid-read.
type ClusterCache struct {
	brokers      map[int32]*BrokerEndpoint
	topics       map[string]*ClusterTopic
	controllerID int32
	lock         sync.RWMutex // protects all of the above, only one since they're always accessed together
}

func NewClusterCache() *ClusterCache {
	cc := new(ClusterCache)
	cc.brokers = make(map[int32]*BrokerEndpoint)
	cc.topics = make(map[string]*ClusterTopic)
	cc.controllerID = -1
	return cc
}

// AddBroker adds or replaces a broker endpoint.
func (cc *ClusterCache) AddBroker(endpoint *BrokerEndpoint) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	cc.brokers[endpoint.ID] = endpoint.clone()
	return cc
}

// RemoveBroker drops a broker from the view.
func (cc *ClusterCache) RemoveBroker(id int32) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	delete(cc.brokers, id)
	return cc
}

// SetController records which broker currently holds the controller role.
func (cc *ClusterCache) SetController(id int32) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	cc.controllerID = id
	return cc
}

// AddTopic adds or replaces a topic. Partitions are kept sorted by ID. A
// partition with nil Isr is taken to be fully in sync; nil Replicas and
// Offline become empty.
func (cc *ClusterCache) AddTopic(topic *ClusterTopic) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	ct := topic.clone()
	for i := range ct.Partitions {
		p := &ct.Partitions[i]
		if p.Replicas == nil {
			p.Replicas = []int32{}
		}
		if p.Isr == nil {
			p.Isr = append([]int32{}, p.Replicas...)
		}
		if p.Offline == nil {
			p.Offline = []int32{}
		}
	}
	sort.Slice(ct.Partitions, func(i, j int) bool {
		return ct.Partitions[i].ID < ct.Partitions[j].ID
	})

	cc.topics[ct.Name] = ct
	return cc
}

// RemoveTopic drops a topic from the view.
func (cc *ClusterCache) RemoveTopic(name string) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	delete(cc.topics, name)
	return cc
}

// SetLeader moves leadership of the partition to the given broker and bumps
// the leader epoch, as a controller would.
func (cc *ClusterCache) SetLeader(topic string, partition, brokerID int32) *ClusterCache {
	cc.lock.Lock()
	defer cc.lock.Unlock()

	ct := cc.topics[topic]
	if ct == nil {
		return cc
	}
	for i := range ct.Partitions {
		if ct.Partitions[i].ID == partition {
			ct.Partitions[i].Leader = brokerID
			ct.Partitions[i].LeaderEpoch++
			break
		}
	}
	return cc
}

func (cc *ClusterCache) AllTopics() []*ClusterTopic {
	cc.lock.RLock()
	defer cc.lock.RUnlock()

	ret := make([]*ClusterTopic, 0, len(cc.topics))
	for _, ct := range cc.topics {
		ret = append(ret, ct.clone())
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Name < ret[j].Name
	})
	return ret
}

func (cc *ClusterCache) Topic(name string) *ClusterTopic {
	cc.lock.RLock()
	defer cc.lock.RUnlock()

	ct := cc.topics[name]
	if ct == nil {
		return nil
	}
	return ct.clone()
}

func (cc *ClusterCache) Brokers() []*BrokerEndpoint {
	cc.lock.RLock()
	defer cc.lock.RUnlock()

	ret := make([]*BrokerEndpoint, 0, len(cc.brokers))
	for _, b := range cc.brokers {
		ret = append(ret, b.clone())
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].ID < ret[j].ID
	})
	return ret
}

func (cc *ClusterCache) ControllerID() int32 {
	cc.lock.RLock()
	defer cc.lock.RUnlock()

	return cc.controllerID
}

func (b *BrokerEndpoint) clone() *BrokerEndpoint {
	out := &BrokerEndpoint{ID: b.ID}
	if b.Rack != nil {
		rack := *b.Rack
		out.Rack = &rack
	}
	out.Listeners = make(map[string]HostPort, len(b.Listeners))
	for name, hp := range b.Listeners {
		out.Listeners[name] = hp
	}
	return out
}

func (ct *ClusterTopic) clone() *ClusterTopic {
	out := &ClusterTopic{Name: ct.Name, Internal: ct.Internal}
	out.Partitions = make([]ClusterPartition, len(ct.Partitions))
	for i, p := range ct.Partitions {
		out.Partitions[i] = ClusterPartition{
			ID:          p.ID,
			Leader:      p.Leader,
			LeaderEpoch: p.LeaderEpoch,
			Replicas:    copyInt32s(p.Replicas),
			Isr:         copyInt32s(p.Isr),
			Offline:     copyInt32s(p.Offline),
		}
	}
	return out
}

func copyInt32s(in []int32) []int32 {
	if in == nil {
		return nil
	}
	out := make([]int32, len(in))
	copy(out, in)
	return out
}
