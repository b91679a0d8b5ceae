package petrel

import (
	"context"
	"time"

	"github.com/eapache/go-resiliency/breaker"
	"github.com/rcrowley/go-metrics"
	"golang.org/x/sync/semaphore"
)

// metadataResolver turns the topic names of a Metadata request into response
// entries: cache hits become metadata, misses become errors or, when
// permitted, on-demand creations (autocreate.go).
type metadataResolver struct {
	conf       *Config
	cache      MetadataCache
	creator    TopicCreator
	authorizer Authorizer

	breaker *breaker.Breaker
	sem     *semaphore.Weighted // caps in-flight creations, nil when uncapped

	createRate metrics.Meter
	createTime metrics.Histogram
}

func newMetadataResolver(conf *Config, cache MetadataCache, creator TopicCreator, authorizer Authorizer) *metadataResolver {
	mr := &metadataResolver{
		conf:       conf,
		cache:      cache,
		creator:    creator,
		authorizer: authorizer,
		breaker:    breaker.New(3, 1, 10*time.Second),
		createRate: metrics.GetOrRegisterMeter("topic-autocreate-rate", conf.MetricRegistry),
		createTime: getOrRegisterHistogram("topic-autocreate-time-in-ms", conf.MetricRegistry),
	}
	if conf.AutoCreate.MaxInFlight > 0 {
		mr.sem = semaphore.NewWeighted(int64(conf.AutoCreate.MaxInFlight))
	}
	return mr
}

// resolveTopics produces one response entry per requested topic, or the full
// describe-authorized topic list when the request asks for everything.
// Immediately resolvable topics come first in request order, entries for
// topics that had to be created follow. The returned error is only ever ctx's;
// topics that fail individually report through their own entry's error code.
func (mr *metadataResolver) resolveTopics(ctx context.Context, req *MetadataRequest, principal Principal) ([]*TopicMetadata, error) {
	includeOps := req.Version >= metadataVersionIncludeAuthOps && req.IncludeTopicAuthorizedOperations

	if req.ListAllTopics() {
		return mr.listAllTopics(principal, includeOps), nil
	}

	entries := make([]*TopicMetadata, 0, len(req.Topics))
	var missing []string
	for _, name := range req.Topics {
		entry, create := mr.resolveOne(name, req.AllowAutoTopicCreation, principal, includeOps)
		if create {
			missing = append(missing, name)
			continue
		}
		entries = append(entries, entry)
	}

	if len(missing) > 0 {
		created, err := mr.createMissingTopics(ctx, missing, principal, includeOps)
		if err != nil {
			return nil, err
		}
		entries = append(entries, created...)
	}

	return entries, nil
}

// listAllTopics enumerates the cache, keeping only topics the principal may
// describe. Filtered-out topics get no error entry: a list-all answer simply
// does not mention topics the principal cannot see.
func (mr *metadataResolver) listAllTopics(principal Principal, includeOps bool) []*TopicMetadata {
	all := mr.cache.AllTopics()
	entries := make([]*TopicMetadata, 0, len(all))
	for _, ct := range all {
		if !mr.authorizer.Authorized(principal, AclOperationDescribe, topicResource(ct.Name)) {
			continue
		}
		entries = append(entries, mr.topicEntry(ct, ct.Name, principal, includeOps))
	}
	return entries
}

// resolveOne resolves a single requested name against the cache, or reports
// create=true when the name should go to the autocreate path instead.
func (mr *metadataResolver) resolveOne(name string, allowAutoCreate bool, principal Principal, includeOps bool) (entry *TopicMetadata, create bool) {
	source := sourceTopic(name)

	// No existence probe for the unauthorized: the answer is the same whether
	// or not the topic exists.
	if !mr.authorizer.Authorized(principal, AclOperationDescribe, topicResource(source)) {
		return errorEntry(name, ErrTopicAuthorizationFailed), false
	}

	if ct := mr.cache.Topic(source); ct != nil {
		reported := source
		if name != source && isMaterializedTopic(name) {
			reported = name
		}
		return mr.topicEntry(ct, reported, principal, includeOps), false
	}

	if !mr.conf.AutoCreate.Enabled || !allowAutoCreate {
		return errorEntry(name, ErrUnknownTopicOrPartition), false
	}

	if !mr.authorizer.Authorized(principal, AclOperationCreate, topicResource(source)) {
		return errorEntry(name, ErrTopicAuthorizationFailed), false
	}

	return nil, true
}

// topicEntry builds the response entry for a cached topic, reported under
// reportedName. reportedName differs from ct.Name only for materialized
// topics; authorized operations are always computed against the real topic.
func (mr *metadataResolver) topicEntry(ct *ClusterTopic, reportedName string, principal Principal, includeOps bool) *TopicMetadata {
	entry := &TopicMetadata{
		Name:       reportedName,
		IsInternal: ct.Internal,
		Partitions: make([]*PartitionMetadata, 0, len(ct.Partitions)),
	}

	for i := range ct.Partitions {
		p := &ct.Partitions[i]
		replicas := p.Replicas
		if replicas == nil {
			replicas = []int32{}
		}
		isr := p.Isr
		if isr == nil {
			isr = append([]int32{}, replicas...)
		}
		offline := p.Offline
		if offline == nil {
			offline = []int32{}
		}
		entry.Partitions = append(entry.Partitions, &PartitionMetadata{
			ID:              p.ID,
			Leader:          p.Leader,
			LeaderEpoch:     p.LeaderEpoch,
			Replicas:        replicas,
			Isr:             isr,
			OfflineReplicas: offline,
		})
	}

	if includeOps {
		ops := mr.authorizer.AuthorizedOperations(principal, topicResource(ct.Name))
		entry.TopicAuthorizedOperations = aclOperationsBitfield(ops)
	}

	return entry
}

func errorEntry(name string, kerr KError) *TopicMetadata {
	return &TopicMetadata{
		Err:        kerr,
		Name:       name,
		Partitions: []*PartitionMetadata{},
	}
}
