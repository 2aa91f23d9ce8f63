package state

import "time"

// TransactionChange records one unit touched during a run.
type TransactionChange struct {
	Unit   string `yaml:"unit"`
	Action string `yaml:"action"`
}

// Transaction represents one apply run.
type Transaction struct {
	ID        string              `yaml:"id"`
	Timestamp time.Time           `yaml:"timestamp"`
	Status    string              `yaml:"status"`
	Changes   []TransactionChange `yaml:"changes"`
}

// State is decree's memory of what it last wrote: one content fingerprint
// per unit name, plus the run history.
type State struct {
	Version  string            `yaml:"version"`
	LastRun  time.Time         `yaml:"last_run,omitempty"`
	Services map[string]string `yaml:"services"`
	History  []Transaction     `yaml:"history,omitempty"`
}

func NewState() *State {
	return &State{
		Version:  "1.0",
		Services: make(map[string]string),
	}
}
