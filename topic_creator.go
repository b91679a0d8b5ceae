package petrel

import "context"

// TopicOutcome is the control plane's verdict on one topic creation attempt.
type TopicOutcome int

const (
	// TopicOutcomeOK means the topic was created.
	TopicOutcomeOK TopicOutcome = iota
	// TopicOutcomeExists means the topic already existed, created by someone
	// else first. For metadata purposes this is as good as OK.
	TopicOutcomeExists
	// TopicOutcomeInvalidName rejects the topic name itself.
	TopicOutcomeInvalidName
	// TopicOutcomeInvalidPartitions rejects the requested partition count.
	TopicOutcomeInvalidPartitions
	// TopicOutcomeInvalidReplication rejects the requested replication factor.
	TopicOutcomeInvalidReplication
	// TopicOutcomePolicyViolation means a creation policy turned the topic down.
	TopicOutcomePolicyViolation
	// TopicOutcomeNotController means the creation landed on a node that is
	// no longer the controller.
	TopicOutcomeNotController
	// TopicOutcomeTimedOut means the controller gave up before a verdict.
	TopicOutcomeTimedOut
)

func (o TopicOutcome) String() string {
	switch o {
	case TopicOutcomeOK:
		return "ok"
	case TopicOutcomeExists:
		return "already exists"
	case TopicOutcomeInvalidName:
		return "invalid name"
	case TopicOutcomeInvalidPartitions:
		return "invalid partitions"
	case TopicOutcomeInvalidReplication:
		return "invalid replication factor"
	case TopicOutcomePolicyViolation:
		return "policy violation"
	case TopicOutcomeNotController:
		return "not controller"
	case TopicOutcomeTimedOut:
		return "timed out"
	}
	return "unknown"
}

// KError maps the outcome to the code reported in a Metadata response entry.
// The successful outcomes map to ErrNoError/ErrTopicAlreadyExists for
// completeness, but the resolver re-reads the cache for those rather than
// reporting the code directly.
func (o TopicOutcome) KError() KError {
	switch o {
	case TopicOutcomeOK:
		return ErrNoError
	case TopicOutcomeExists:
		return ErrTopicAlreadyExists
	case TopicOutcomeInvalidName:
		return ErrInvalidTopic
	case TopicOutcomeInvalidPartitions:
		return ErrInvalidPartitions
	case TopicOutcomeInvalidReplication:
		return ErrInvalidReplicationFactor
	case TopicOutcomePolicyViolation:
		return ErrPolicyViolation
	case TopicOutcomeNotController:
		return ErrNotController
	case TopicOutcomeTimedOut:
		return ErrRequestTimedOut
	}
	return ErrInvalidTopic
}

// CreatableTopic is one topic the broker asks the control plane to create.
type CreatableTopic struct {
	Name              string
	NumPartitions     int32
	ReplicationFactor int16
}

// TopicCreation is the per-topic result of a Create call.
type TopicCreation struct {
	Topic   string
	Outcome TopicOutcome
}

// TopicCreator submits topic creations to the cluster's control plane.
//
// A returned error means the control plane could not be reached or gave no
// verdict at all; per-topic verdicts, including failures, come back as
// TopicCreations. Create must be idempotent (creating an existing topic
// reports TopicOutcomeExists) and safe for concurrent use. Implementations
// must honor ctx: the broker bounds every attempt with a deadline.
type TopicCreator interface {
	Create(ctx context.Context, topics []CreatableTopic) ([]TopicCreation, error)
}
