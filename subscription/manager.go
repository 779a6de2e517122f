package subscription

import (
	"encoding/json"
	"fmt"
	"os"

	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

// Manager keeps subscriptions in memory, keyed by ID. Like the entities it
// holds, a Manager assumes a single writer; callers serialize access.
type Manager struct {
	logger        *zap.Logger
	subscriptions map[string]*Subscription
}

// NewManager returns a new Manager for subscriptions
func NewManager(logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Manager{
		logger:        logger,
		subscriptions: make(map[string]*Subscription),
	}, nil
}

// Create will initialize a new subscription and register it
func (m *Manager) Create(opts InitializeOptions) (*Subscription, error) {
	s, err := Initialize(opts)
	if err != nil {
		m.logger.Error("Unable to initialize subscription",
			zap.String("name", opts.Name),
			zap.Error(err),
		)
		return nil, err
	}
	m.subscriptions[s.ID()] = s
	m.logger.Info("Subscription created",
		zap.String("id", s.ID()),
		zap.String("slug", s.Slug()),
	)
	return s, nil
}

// GetByID returns the subscription with the given ID, or nil when absent
func (m *Manager) GetByID(id string) *Subscription {
	return m.subscriptions[id]
}

// GetBySlug returns the subscription with the given slug, or nil when absent
func (m *Manager) GetBySlug(slug string) *Subscription {
	for _, s := range m.subscriptions {
		if s.Slug() == slug {
			return s
		}
	}
	return nil
}

// List returns every registered subscription
func (m *Manager) List() []*Subscription {
	out := make([]*Subscription, 0, len(m.subscriptions))
	for _, s := range m.subscriptions {
		out = append(out, s)
	}
	return out
}

// Remove unregisters a subscription by ID
func (m *Manager) Remove(id string) bool {
	if _, ok := m.subscriptions[id]; !ok {
		return false
	}
	delete(m.subscriptions, id)
	return true
}

// LoadFromFile will read serialized subscriptions from a JSON file (an array
// of documents) and register each of them
func (m *Manager) LoadFromFile(filename string) (int, error) {
	jsonBytes, err := os.ReadFile(filename)
	if err != nil {
		return 0, extErrors.Wrap(err, "Cannot open subscriptions JSON file")
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(jsonBytes, &raw); err != nil {
		return 0, extErrors.Wrap(err, "Invalid subscriptions JSON file")
	}
	count := 0
	for _, doc := range raw {
		s, err := ParseFromJSON([]byte(doc))
		if err != nil {
			m.logger.Error("Unable to parse subscription document",
				zap.Error(err),
			)
			return count, err
		}
		m.subscriptions[s.ID()] = s
		count++
	}
	return count, nil
}
