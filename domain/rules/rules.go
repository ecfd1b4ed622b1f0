// Package rules evaluates the fixed security rule set against a composition
// plan. Rules are pure predicates over the plan - they never look at the
// emitted source and never fail; a rule that does not trigger contributes
// nothing. Evaluation order is fixed by rule id and the diagnostic list
// preserves it.
package rules

import (
	"fmt"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/compose"
)

// Severity of a diagnostic.
type Severity string

// Severities.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Diagnostic is a rule engine finding (value type).
type Diagnostic struct {
	Severity   Severity `json:"severity"`
	RuleID     string   `json:"rule_id"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Rule ids. R-rules are the security rule set; C-rules are configuration
// errors surfaced for selections built outside the toggle contract.
const (
	RuleMintWithoutAccess = "R1"
	RuleVaultNoReentrancy = "R2"
	RuleAccessControl     = "R3"
	RuleEmergencyPause    = "R4"

	RuleUnknownModule      = "C1"
	RuleIncompatibleModule = "C2"
)

// rule is one entry in the fixed rule table.
type rule struct {
	id   string
	eval func(compose.Plan) *Diagnostic
}

// ruleTable is evaluated in order. Append-only: rule ids are stable.
var ruleTable = []rule{
	{RuleMintWithoutAccess, evalMintWithoutAccess},
	{RuleVaultNoReentrancy, evalVaultNoReentrancy},
	{RuleAccessControl, evalAccessControl},
	{RuleEmergencyPause, evalEmergencyPause},
}

// Evaluate runs the security rules against the plan in fixed id order.
func Evaluate(plan compose.Plan) []Diagnostic {
	var out []Diagnostic
	for _, r := range ruleTable {
		if d := r.eval(plan); d != nil {
			out = append(out, *d)
		}
	}
	return out
}

func hasAccessControl(plan compose.Plan) bool {
	return plan.Has("ownable") || plan.Has("accessControl")
}

func evalMintWithoutAccess(plan compose.Plan) *Diagnostic {
	if !plan.Has("mintable") || hasAccessControl(plan) {
		return nil
	}
	return &Diagnostic{
		Severity:   SeverityWarning,
		RuleID:     RuleMintWithoutAccess,
		Message:    "Minting enabled without access control",
		Suggestion: "Add Ownable or Access Control so only authorized accounts can mint",
	}
}

func evalVaultNoReentrancy(plan compose.Plan) *Diagnostic {
	if plan.Archetype.Kind != catalog.KindVault || plan.Has("reentrancyGuard") {
		return nil
	}
	return &Diagnostic{
		Severity:   SeverityWarning,
		RuleID:     RuleVaultNoReentrancy,
		Message:    "Vault contract without reentrancy protection",
		Suggestion: "Add Reentrancy Guard to protect withdrawal paths from reentrant calls",
	}
}

func evalAccessControl(plan compose.Plan) *Diagnostic {
	if !hasAccessControl(plan) {
		return nil
	}
	return &Diagnostic{
		Severity: SeverityInfo,
		RuleID:   RuleAccessControl,
		Message:  "Access control implemented",
	}
}

func evalEmergencyPause(plan compose.Plan) *Diagnostic {
	if !plan.Has("pausable") {
		return nil
	}
	return &Diagnostic{
		Severity: SeverityInfo,
		RuleID:   RuleEmergencyPause,
		Message:  "Emergency pause available",
	}
}

// ConfigDiagnostics converts a linearizer report into critical diagnostics,
// unknown ids first, in report order. An empty report yields nil.
func ConfigDiagnostics(report compose.Report) []Diagnostic {
	var out []Diagnostic
	for _, id := range report.UnknownModules {
		out = append(out, Diagnostic{
			Severity:   SeverityCritical,
			RuleID:     RuleUnknownModule,
			Message:    fmt.Sprintf("Unknown module %q in selection", id),
			Suggestion: "Remove the module from the selection or register it in the catalog",
		})
	}
	for _, id := range report.IncompatibleModules {
		out = append(out, Diagnostic{
			Severity:   SeverityCritical,
			RuleID:     RuleIncompatibleModule,
			Message:    fmt.Sprintf("Module %q is not compatible with the selected archetype", id),
			Suggestion: "Remove the module or switch to an archetype it supports",
		})
	}
	return out
}
