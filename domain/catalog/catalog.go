// Package catalog provides the static registry of contract archetypes and
// composable feature modules. Descriptors are pure data: every behavioral
// difference between modules (storage namespace, init call, guard line,
// method fragments) lives in the descriptor tables, not in code paths.
// The registry is read-only after construction and safe for concurrent use.
package catalog

// Category groups modules in the catalog.
type Category string

// Module categories.
const (
	CategoryAccess   Category = "access"
	CategorySecurity Category = "security"
	CategorySupply   Category = "supply"
	CategoryAdvanced Category = "advanced"
)

// Kind identifies the behavioral family of an archetype.
type Kind string

// Archetype kinds.
const (
	KindToken Kind = "token"
	KindNFT   Kind = "nft"
	KindVault Kind = "vault"
)

// GuardKind classifies guard-providing modules. The emitter prepends guard
// lines to capability methods in ascending GuardKind order: access control
// first, then pause, then reentrancy. Future guards slot in after.
type GuardKind int

// Guard kinds, in emission order.
const (
	GuardNone GuardKind = iota
	GuardAccess
	GuardPause
	GuardReentrancy
)

// ParamType is the value type of an archetype parameter.
type ParamType string

// Parameter types.
const (
	ParamString ParamType = "string"
	ParamInt    ParamType = "int"
)

// Param describes one archetype parameter.
type Param struct {
	Name     string
	Label    string
	Type     ParamType
	Required bool
	Default  string
	// InInit marks parameters passed to the base initializer, in the order
	// they appear in the archetype's Parameters list.
	InInit bool
}

// MethodFragment is a capability method contributed by a module. The emitter
// renders it only when the contributing module is in the plan; the body is
// the selected guard lines (filtered by the Wants* flags) followed by Core.
type MethodFragment struct {
	Name      string
	Signature string // Python signature, e.g. "mint(self, to: str, amount: int)"
	Doc       string // one-line docstring

	WantsAccessGuard     bool
	WantsPauseGuard      bool
	WantsReentrancyGuard bool

	Core []string // core mutation lines, emitted after the guards
}

// Module describes one composable feature module (immutable value type).
type Module struct {
	ID          string
	DisplayName string
	Category    Category

	// Conflicts lists module IDs that are mutually exclusive with this one.
	// The relation is symmetric; the registry validates symmetry.
	Conflicts []string

	// CompatibleArchetypes lists archetype IDs this module composes with.
	CompatibleArchetypes []string

	// StorageNamespace is the persistent-state key prefix the module's
	// runtime mixin uses. Unique per module, validated at registry build.
	StorageNamespace string

	// Import is the mixin class name in the pychain standard library.
	Import string

	// InitCall is the constructor line that initializes the mixin.
	InitCall string

	// Guard describes the guard this module contributes to capability
	// methods, if any. GuardLine is empty when Guard is GuardNone.
	Guard     GuardKind
	GuardLine string

	Methods []MethodFragment
}

// Archetype describes a base contract archetype (immutable value type).
type Archetype struct {
	ID          string
	DisplayName string
	Kind        Kind

	// Import is the base class name in the pychain standard library.
	Import string

	// Parameters in declaration order. Those with InInit set are passed to
	// the base initializer in this order.
	Parameters []Param
}

// HasConflict reports whether the module declares a conflict with id.
func (m Module) HasConflict(id string) bool {
	for _, c := range m.Conflicts {
		if c == id {
			return true
		}
	}
	return false
}

// SupportsArchetype reports whether the module composes with the archetype.
func (m Module) SupportsArchetype(archetypeID string) bool {
	for _, a := range m.CompatibleArchetypes {
		if a == archetypeID {
			return true
		}
	}
	return false
}

// InitParams returns the parameters passed to the base initializer, in order.
func (a Archetype) InitParams() []Param {
	var out []Param
	for _, p := range a.Parameters {
		if p.InInit {
			out = append(out, p)
		}
	}
	return out
}
