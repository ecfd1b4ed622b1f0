// Package generation defines the persisted record of a generation run.
package generation

import (
	"time"

	"github.com/pychain/forge/domain/rules"
)

// Record captures one generation run (value type). Source is the full
// emitted text; Diagnostics are the rule engine findings at that time.
type Record struct {
	ID           string
	ArchetypeID  string
	ContractName string
	Modules      []string
	Parameters   map[string]string
	Source       string
	Diagnostics  []rules.Diagnostic
	CreatedAt    time.Time
}
