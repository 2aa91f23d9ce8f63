package state

import (
	"time"

	"github.com/google/uuid"
)

// NewTransaction starts a history entry for one run.
func NewTransaction() Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// AddTransaction appends a transaction to the in-memory history. It is
// persisted by the same single Save that flushes the fingerprints.
func (m *Manager) AddTransaction(tx Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Current.History = append(m.Current.History, tx)
}

// Transactions returns a copy of the history.
func (m *Manager) Transactions() []Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]Transaction, len(m.Current.History))
	copy(history, m.Current.History)
	return history
}
