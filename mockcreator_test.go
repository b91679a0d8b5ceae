//go:build !functional

package petrel

import (
	"context"
	"sync"
)

// topicCreatorFunc adapts a plain function to the TopicCreator interface.
type topicCreatorFunc func(ctx context.Context, topics []CreatableTopic) ([]TopicCreation, error)

func (f topicCreatorFunc) Create(ctx context.Context, topics []CreatableTopic) ([]TopicCreation, error) {
	return f(ctx, topics)
}

// mockCreator is a TopicCreator for tests. The zero behavior is to report
// every topic created; failures, verdicts, hangs and panics are layered on
// per topic with the Set methods, which can be chained. Safe for concurrent
// Create calls, as the real control plane client must be.
type mockCreator struct {
	lock     sync.Mutex
	outcomes map[string]TopicOutcome
	faults   map[string]error
	hangs    map[string]bool
	panics   map[string]bool
	onCreate map[string]func()
	calls    []CreatableTopic
}

func newMockCreator() *mockCreator {
	return &mockCreator{
		outcomes: make(map[string]TopicOutcome),
		faults:   make(map[string]error),
		hangs:    make(map[string]bool),
		panics:   make(map[string]bool),
		onCreate: make(map[string]func()),
	}
}

// SetOutcome fixes the verdict returned for the topic.
func (m *mockCreator) SetOutcome(topic string, outcome TopicOutcome) *mockCreator {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.outcomes[topic] = outcome
	return m
}

// SetFault makes Create return err when asked for the topic.
func (m *mockCreator) SetFault(topic string, err error) *mockCreator {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.faults[topic] = err
	return m
}

// SetHang makes Create block on the topic until its context expires.
func (m *mockCreator) SetHang(topic string) *mockCreator {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.hangs[topic] = true
	return m
}

// SetPanic makes Create panic when asked for the topic.
func (m *mockCreator) SetPanic(topic string) *mockCreator {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.panics[topic] = true
	return m
}

// SetOnCreate runs fn before answering for the topic. Tests use it to land
// the new topic in the cache the way a real creation would.
func (m *mockCreator) SetOnCreate(topic string, fn func()) *mockCreator {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.onCreate[topic] = fn
	return m
}

// Calls returns every CreatableTopic ever submitted, in submission order.
func (m *mockCreator) Calls() []CreatableTopic {
	m.lock.Lock()
	defer m.lock.Unlock()
	out := make([]CreatableTopic, len(m.calls))
	copy(out, m.calls)
	return out
}

// CreatedTopics returns just the names from Calls.
func (m *mockCreator) CreatedTopics() []string {
	calls := m.Calls()
	names := make([]string, 0, len(calls))
	for _, c := range calls {
		names = append(names, c.Name)
	}
	return names
}

func (m *mockCreator) Create(ctx context.Context, topics []CreatableTopic) ([]TopicCreation, error) {
	type plan struct {
		outcome TopicOutcome
		fault   error
		hang    bool
		panics  bool
		fn      func()
	}

	m.lock.Lock()
	m.calls = append(m.calls, topics...)
	plans := make([]plan, len(topics))
	for i, topic := range topics {
		plans[i] = plan{
			outcome: m.outcomes[topic.Name],
			fault:   m.faults[topic.Name],
			hang:    m.hangs[topic.Name],
			panics:  m.panics[topic.Name],
			fn:      m.onCreate[topic.Name],
		}
	}
	m.lock.Unlock()

	out := make([]TopicCreation, 0, len(topics))
	for i, topic := range topics {
		p := plans[i]
		if p.fn != nil {
			p.fn()
		}
		if p.panics {
			panic("mock creator: panic creating " + topic.Name)
		}
		if p.hang {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		if p.fault != nil {
			return nil, p.fault
		}
		out = append(out, TopicCreation{Topic: topic.Name, Outcome: p.outcome})
	}
	return out, nil
}
