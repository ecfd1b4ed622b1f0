// Package app contains application services orchestrating the domain
// packages. Services hold no derived state between calls: every generation
// runs the full pipeline (linearize, render, rules) from the spec snapshot.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pychain/forge/domain/catalog"
	"github.com/pychain/forge/domain/compose"
	"github.com/pychain/forge/domain/contract"
	"github.com/pychain/forge/domain/emit"
	"github.com/pychain/forge/domain/generation"
	"github.com/pychain/forge/domain/rules"
	"github.com/pychain/forge/ports"
)

// MetricsRecorder receives generation pipeline metrics. Implemented by
// adapters/metrics; nil-safe via the service's guards.
type MetricsRecorder interface {
	RecordGeneration(archetypeID string, duration time.Duration)
	RecordDiagnostic(severity, ruleID string)
}

// Result is the outcome of one generation run.
type Result struct {
	ID          string
	Source      string
	Diagnostics []rules.Diagnostic
	CreatedAt   time.Time
}

// GenerateService runs the generation pipeline and records history.
type GenerateService struct {
	reg     *catalog.Registry
	clock   ports.Clock
	ids     ports.IDGenerator
	history ports.GenerationStore // optional
	metrics MetricsRecorder      // optional
	logger  zerolog.Logger
}

// GenerateDeps contains dependencies for the generate service.
type GenerateDeps struct {
	Registry *catalog.Registry
	Clock    ports.Clock
	IDs      ports.IDGenerator
	History  ports.GenerationStore
	Metrics  MetricsRecorder
	Logger   zerolog.Logger
}

// NewGenerateService creates a new generate service.
func NewGenerateService(deps GenerateDeps) *GenerateService {
	return &GenerateService{
		reg:     deps.Registry,
		clock:   deps.Clock,
		ids:     deps.IDs,
		history: deps.History,
		metrics: deps.Metrics,
		logger:  deps.Logger,
	}
}

// GenerateAt is the pure pipeline: spec in, source text and diagnostics out.
// Calling it twice with the same spec and timestamp yields identical output.
//
// An unknown archetype id produces empty source plus the configuration
// diagnostics; rules are evaluated only when a plan exists.
func GenerateAt(reg *catalog.Registry, spec contract.Spec, now time.Time) (string, []rules.Diagnostic) {
	plan, report, ok := compose.Linearize(reg, spec)
	diags := rules.ConfigDiagnostics(report)
	if !ok {
		return "", diags
	}
	diags = append(diags, rules.Evaluate(plan)...)
	return emit.Render(plan, spec.Parameters, now), diags
}

// Generate runs the pipeline once, records metrics, and persists the run
// when a history store is configured and the output is non-empty.
func (s *GenerateService) Generate(ctx context.Context, spec contract.Spec) (Result, error) {
	start := time.Now()
	now := s.clock.Now()

	source, diags := GenerateAt(s.reg, spec, now)

	res := Result{
		ID:          s.ids.New(),
		Source:      source,
		Diagnostics: diags,
		CreatedAt:   now,
	}

	if s.metrics != nil {
		s.metrics.RecordGeneration(spec.ArchetypeID, time.Since(start))
		for _, d := range diags {
			s.metrics.RecordDiagnostic(string(d.Severity), d.RuleID)
		}
	}

	s.logger.Debug().
		Str("archetype", spec.ArchetypeID).
		Strs("modules", spec.Modules).
		Int("diagnostics", len(diags)).
		Bool("empty", source == "").
		Msg("contract generated")

	if s.history != nil && source != "" {
		rec := generation.Record{
			ID:           res.ID,
			ArchetypeID:  spec.ArchetypeID,
			ContractName: emit.ClassName(spec.Parameter("name")),
			Modules:      append([]string(nil), spec.Modules...),
			Parameters:   spec.Clone().Parameters,
			Source:       source,
			Diagnostics:  diags,
			CreatedAt:    now,
		}
		if err := s.history.Save(ctx, rec); err != nil {
			// History is best-effort; generation output is already computed.
			s.logger.Warn().Err(err).Str("id", res.ID).Msg("failed to persist generation record")
		}
	}

	return res, nil
}

// History returns the most recent generation records, newest first.
func (s *GenerateService) History(ctx context.Context, limit int) ([]generation.Record, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

// GetGeneration retrieves a single generation record.
func (s *GenerateService) GetGeneration(ctx context.Context, id string) (generation.Record, error) {
	if s.history == nil {
		return generation.Record{}, ports.ErrNotFound
	}
	return s.history.Get(ctx, id)
}
