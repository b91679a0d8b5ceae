package petrel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// createMissingTopics runs one creation attempt per name and collects the
// resulting response entries in issue order. Attempts run concurrently, each
// detached from ctx under its own deadline: when the requesting client goes
// away the request stops waiting, but creations already in flight finish so
// that the next request finds the topics there.
func (mr *metadataResolver) createMissingTopics(ctx context.Context, names []string, principal Principal, includeOps bool) ([]*TopicMetadata, error) {
	entries := make([]*TopicMetadata, len(names))
	faults := make([]error, len(names))

	var wg sync.WaitGroup
	wg.Add(len(names))
	for i, name := range names {
		go func(i int, name string) {
			defer wg.Done()

			// a panic inside createOne leaves the timed-out entry in place
			entry := errorEntry(name, ErrRequestTimedOut)
			var fault error
			withRecover(func() {
				entry, fault = mr.createOne(name, principal, includeOps)
			})
			entries[i], faults[i] = entry, fault
		}(i, name)
	}

	done := make(chan struct{})
	go withRecover(func() {
		wg.Wait()
		close(done)
	})

	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var errs []error
	for _, fault := range faults {
		if fault != nil {
			errs = append(errs, fault)
		}
	}
	if len(errs) > 0 {
		Logger.Println(Wrap(ErrAutoTopicCreation, errs...))
	}

	return entries, nil
}

// createOne issues a single-topic creation and turns the verdict into a
// response entry. The returned fault, when non-nil, is aggregated and logged
// by the caller; the entry already carries the client-facing code.
func (mr *metadataResolver) createOne(name string, principal Principal, includeOps bool) (*TopicMetadata, error) {
	// Deliberately not the request context: a client that gives up must not
	// cancel a creation some other client may be about to need.
	ctx, cancel := context.WithTimeout(context.Background(), mr.conf.AutoCreate.Timeout)
	defer cancel()

	if mr.sem != nil {
		if err := mr.sem.Acquire(ctx, 1); err != nil {
			return errorEntry(name, ErrRequestTimedOut), fmt.Errorf("creating %q: %w", name, err)
		}
		defer mr.sem.Release(1)
	}

	mr.createRate.Mark(1)
	getOrRegisterTopicMeter("topic-autocreate-rate", name, mr.conf.MetricRegistry).Mark(1)

	var creations []TopicCreation
	start := time.Now()
	err := mr.breaker.Run(func() error {
		var err error
		creations, err = mr.creator.Create(ctx, []CreatableTopic{{
			Name:              name,
			NumPartitions:     mr.conf.AutoCreate.NumPartitions,
			ReplicationFactor: mr.conf.AutoCreate.ReplicationFactor,
		}})
		return err
	})
	mr.createTime.Update(int64(time.Since(start) / time.Millisecond))
	if err != nil {
		return errorEntry(name, ErrRequestTimedOut), fmt.Errorf("creating %q: %w", name, err)
	}

	for _, c := range creations {
		if c.Topic == name {
			return mr.creationEntry(c, principal, includeOps), nil
		}
	}
	return errorEntry(name, ErrRequestTimedOut), fmt.Errorf("creating %q: control plane returned no verdict", name)
}

// creationEntry converts a creation verdict into a response entry. Created and
// already-existing topics are answered from the cache, which the creation must
// have reached for the verdict to exist; a topic the cache still does not know
// is reported as ErrInvalidTopic rather than invented.
func (mr *metadataResolver) creationEntry(c TopicCreation, principal Principal, includeOps bool) *TopicMetadata {
	switch c.Outcome {
	case TopicOutcomeOK, TopicOutcomeExists:
		if ct := mr.cache.Topic(c.Topic); ct != nil {
			return mr.topicEntry(ct, c.Topic, principal, includeOps)
		}
		return errorEntry(c.Topic, ErrInvalidTopic)
	}
	return errorEntry(c.Topic, c.Outcome.KError())
}
