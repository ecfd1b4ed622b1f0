// Package emit renders a composition plan into pychain contract source.
// Rendering is pure text construction: identical plan, parameters, and
// timestamp always produce byte-identical output. The caller supplies the
// timestamp so determinism stays in its hands.
package emit

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/compose"
)

// contractTemplate is the overall file skeleton. All per-module variation is
// resolved into contractData before execution; the template only lays lines
// out.
const contractTemplate = `# ==================================================================
# {{.Name}}
# Base: {{.ArchetypeDisplay}}
# Modules: {{if .ModuleDisplays}}{{join .ModuleDisplays ", "}}{{else}}none{{end}}
# Generated: {{.GeneratedAt}}
# ==================================================================

{{range .Imports}}{{.}}
{{end}}
class {{.Name}}({{join .Bases ", "}}):
    def __init__(self):
{{range .InitLines}}        {{.}}
{{end}}{{range .Methods}}
    def {{.Signature}}:
        """{{.Doc}}"""
{{range .Lines}}        {{.}}
{{end}}{{end}}`

type contractData struct {
	Name             string
	ArchetypeDisplay string
	ModuleDisplays   []string
	GeneratedAt      string
	Imports          []string
	Bases            []string
	InitLines        []string
	Methods          []methodData
}

type methodData struct {
	Signature string
	Doc       string
	Lines     []string
}

var tmpl = template.Must(template.New("contract").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(contractTemplate))

// Render emits the contract source for the plan.
//
// Returns "" when there is nothing to show yet: the plan has no archetype or
// the name parameter does not yield a usable class name. This is the empty
// state, not an error.
func Render(plan compose.Plan, params map[string]string, now time.Time) string {
	if plan.Archetype.ID == "" {
		return ""
	}
	name := ClassName(params["name"])
	if name == "" {
		return ""
	}

	data := contractData{
		Name:             name,
		ArchetypeDisplay: plan.Archetype.DisplayName,
		GeneratedAt:      now.UTC().Format(time.RFC3339),
		Imports:          imports(plan),
		Bases:            bases(plan),
		InitLines:        initLines(plan, params),
		Methods:          methods(plan),
	}
	for _, m := range plan.Modules {
		data.ModuleDisplays = append(data.ModuleDisplays, m.DisplayName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		// The template is static and the data contains no failing types;
		// execution cannot fail on well-formed descriptors.
		return ""
	}
	return buf.String()
}

// imports returns one import line per distinct source, in plan order:
// the archetype base first, then each module's mixin.
func imports(plan compose.Plan) []string {
	out := []string{"from pychain.std.base import " + plan.Archetype.Import}
	seen := map[string]bool{}
	for _, m := range plan.Modules {
		if seen[m.Import] {
			continue
		}
		seen[m.Import] = true
		out = append(out, "from pychain.std.mixins import "+m.Import)
	}
	return out
}

// bases returns the class declaration name list: modules first in plan order
// (first-listed has highest precedence), archetype last.
func bases(plan compose.Plan) []string {
	var out []string
	for _, m := range plan.Modules {
		out = append(out, m.Import)
	}
	return append(out, plan.Archetype.Import)
}

// initLines builds the constructor body: base initializer with required
// parameters substituted, one mixin init per module in plan order, then the
// token initial-supply mint when applicable.
func initLines(plan compose.Plan, params map[string]string) []string {
	var args []string
	args = append(args, "self")
	for _, p := range plan.Archetype.InitParams() {
		args = append(args, paramLiteral(p, params[p.Name]))
	}
	out := []string{plan.Archetype.Import + ".__init__(" + strings.Join(args, ", ") + ")"}

	for _, m := range plan.Modules {
		out = append(out, m.InitCall)
	}

	if supply := params["initialSupply"]; supply != "" &&
		plan.Archetype.Kind == catalog.KindToken && plan.Has("mintable") {
		out = append(out, "self._mint(self.msg_sender(), "+intLiteral(supply)+")")
	}
	return out
}

// methods collects capability methods in plan order. When two modules
// contribute a fragment with the same method name, the module listed earlier
// in the plan wins. Guard lines are prepended in fixed order: access control
// guard, then pause guard, then reentrancy guard.
func methods(plan compose.Plan) []methodData {
	guards := guardLines(plan)

	var out []methodData
	emitted := map[string]bool{}
	for _, m := range plan.Modules {
		for _, f := range m.Methods {
			if emitted[f.Name] {
				continue
			}
			emitted[f.Name] = true

			var lines []string
			if f.WantsAccessGuard && guards[catalog.GuardAccess] != "" {
				lines = append(lines, guards[catalog.GuardAccess])
			}
			if f.WantsPauseGuard && guards[catalog.GuardPause] != "" {
				lines = append(lines, guards[catalog.GuardPause])
			}
			if f.WantsReentrancyGuard && guards[catalog.GuardReentrancy] != "" {
				lines = append(lines, guards[catalog.GuardReentrancy])
			}
			lines = append(lines, f.Core...)

			out = append(out, methodData{Signature: f.Signature, Doc: f.Doc, Lines: lines})
		}
	}
	return out
}

func guardLines(plan compose.Plan) map[catalog.GuardKind]string {
	out := map[catalog.GuardKind]string{}
	for _, m := range plan.Modules {
		if m.Guard != catalog.GuardNone && out[m.Guard] == "" {
			out[m.Guard] = m.GuardLine
		}
	}
	return out
}

// paramLiteral renders an archetype parameter value as a Python literal,
// falling back to the declared default when the value is empty.
func paramLiteral(p catalog.Param, value string) string {
	if value == "" {
		value = p.Default
	}
	if p.Type == catalog.ParamInt {
		return intLiteral(value)
	}
	return strconv.Quote(value)
}

// intLiteral keeps well-formed integers as-is and degrades anything else to
// zero rather than emitting syntactically broken source.
func intLiteral(v string) string {
	if v == "" {
		return "0"
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return "0"
		}
	}
	if v = strings.TrimLeft(v, "0"); v == "" {
		return "0"
	}
	return v
}

// ClassName derives a Python class identifier from the contract name
// parameter: words are capitalized and concatenated, non-alphanumeric runes
// separate words, and a leading digit gets a "C" prefix. Returns "" when no
// usable identifier remains.
func ClassName(name string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
				startOfWord = false
			} else {
				b.WriteRune(r)
			}
		default:
			startOfWord = true
		}
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "C" + out
	}
	return out
}
