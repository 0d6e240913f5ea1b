// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"skillex-cli/internal/config"
	"skillex-cli/internal/discovery"
	"skillex-cli/internal/issue"
	"skillex-cli/pkg/archive"
	"skillex-cli/pkg/fsguard"
	"skillex-cli/pkg/skill"

	"github.com/charmbracelet/log"
)

// Stable failure reasons exposed to callers. Diagnostic detail goes to the
// debug log, never into these strings.
const (
	reasonSecurity  = "security: skill path failed containment validation"
	reasonIntegrity = "integrity: archive failed post-write verification"
	reasonBuild     = "build: archive construction failed"
	reasonCanceled  = "skipped: invocation canceled before this skill was processed"
)

// Options tunes one packaging invocation. The zero value is valid.
type Options struct {
	// Detail populates per-skill timing and size data in each Outcome.
	// It does not change which skills succeed or fail.
	Detail bool
	// Workers bounds concurrent archive builds. Values below 2 mean strictly
	// sequential processing, which is the default.
	Workers int
}

// Service coordinates the packaging pipeline for one EngineConfig.
type Service struct {
	cfg       config.EngineConfig
	discovery *discovery.Discovery
	builder   *archive.Builder
}

// NewService creates a Service with production dependencies.
func NewService(cfg config.EngineConfig) *Service {
	return &Service{
		cfg:       cfg,
		discovery: discovery.New(cfg),
		builder:   archive.NewBuilder(),
	}
}

// PackageByPattern discovers skills, filters them by pattern, and builds one
// archive per match, continuing past per-skill failures.
//
// An empty filtered set is a valid result with zero skills, not an error.
// The returned Result's outcome lists are sorted by skill name regardless of
// completion order.
func (s *Service) PackageByPattern(ctx context.Context, pattern string, opts Options) (*Result, error) {
	start := time.Now()

	all, err := s.discovery.DiscoverAll()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("discover skills").
			WithResource(s.cfg.SkillsRoot).
			WithSuggestion("Check read permissions on the skills directory").
			Wrap(err).
			BuildError()
	}

	matched := skill.Match(pattern, all)

	result := &Result{TotalSkills: len(matched)}
	if len(matched) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	outcomes := s.processAll(ctx, matched, opts)

	for _, o := range outcomes {
		switch o.Status {
		case StatusSucceeded:
			result.TotalBytes += o.bytesWritten
			result.Successes = append(result.Successes, o.Outcome)
		case StatusFailed:
			result.Failures = append(result.Failures, o.Outcome)
		default:
			result.Skipped = append(result.Skipped, o.Outcome)
		}
	}

	// Deterministic ordering regardless of completion order.
	sortByName(result.Successes)
	sortByName(result.Failures)
	sortByName(result.Skipped)

	result.Duration = time.Since(start)
	return result, nil
}

// PackageSingle packages one skill by exact name.
func (s *Service) PackageSingle(ctx context.Context, name string, opts Options) (*Outcome, error) {
	all, err := s.discovery.DiscoverAll()
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("discover skills").
			WithResource(s.cfg.SkillsRoot).
			Wrap(err).
			BuildError()
	}

	for _, sk := range all {
		if sk.Name == name {
			o := s.processOne(sk, opts)
			return &o.Outcome, nil
		}
	}

	return nil, issue.NewErrorContext().
		WithOperation("package skill").
		WithResource(name).
		WithSuggestion("Run 'skillex list' to see available skills").
		WithSuggestion("Skill names must match exactly; use 'skillex zip <pattern>' for substring matching").
		Wrap(errors.New("skill not found")).
		BuildError()
}

// tracked pairs an Outcome with internal accounting that must not depend on
// the Detail option.
type tracked struct {
	Outcome
	bytesWritten int64
}

// processAll runs the per-skill pipeline over matched, sequentially by
// default or with a bounded worker pool when opts.Workers > 1. Cancellation
// is checked before each skill starts, and again once a worker slot is
// acquired; skills never started are reported as skipped rather than
// silently dropped.
func (s *Service) processAll(ctx context.Context, matched []skill.Skill, opts Options) []tracked {
	outcomes := make([]tracked, len(matched))

	if opts.Workers < 2 {
		for i, sk := range matched {
			if ctx.Err() != nil {
				outcomes[i] = skippedOutcome(sk.Name)
				continue
			}
			outcomes[i] = s.processOne(sk, opts)
		}
		return outcomes
	}

	// Bounded concurrency: each build touches a disjoint temp file and
	// target, and the census snapshot is shared read-only, so no locking
	// is needed beyond the semaphore.
	sem := make(chan struct{}, opts.Workers)
	var wg sync.WaitGroup
	for i, sk := range matched {
		if ctx.Err() != nil {
			outcomes[i] = skippedOutcome(sk.Name)
			continue
		}
		wg.Add(1)
		go func(i int, sk skill.Skill) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			// A cancel can land while this skill waits on the semaphore.
			if ctx.Err() != nil {
				outcomes[i] = skippedOutcome(sk.Name)
				return
			}
			outcomes[i] = s.processOne(sk, opts)
		}(i, sk)
	}
	wg.Wait()

	return outcomes
}

// processOne moves a single skill through Validating → Archiving and
// produces its terminal outcome. Each skill is processed exactly once per
// invocation.
func (s *Service) processOne(sk skill.Skill, opts Options) tracked {
	start := time.Now()
	o := tracked{Outcome: Outcome{SkillName: sk.Name, Status: StatusValidating}}

	if _, err := fsguard.Validate(sk.Path, s.cfg.SkillsRoot); err != nil {
		log.Debug("skill failed path validation", "skill", sk.Name, "err", err)
		o.Status = StatusFailed
		o.Reason = reasonSecurity
		finishOutcome(&o, start, opts)
		return o
	}

	o.Status = StatusArchiving
	log.Debug("archiving skill", "skill", sk.Name, "files", sk.FileCount)

	built, err := s.builder.Build(sk, s.cfg.OutputRoot)
	if err != nil {
		log.Debug("archive build failed", "skill", sk.Name, "err", err)
		o.Status = StatusFailed
		if errors.Is(err, archive.ErrIntegrity) {
			o.Reason = reasonIntegrity
		} else {
			o.Reason = reasonBuild
		}
		finishOutcome(&o, start, opts)
		return o
	}

	o.Status = StatusSucceeded
	o.ArchivePath = built.ArchivePath
	o.Warnings = built.Warnings
	o.bytesWritten = built.SizeBytes
	if opts.Detail {
		o.SizeBytes = built.SizeBytes
	}
	finishOutcome(&o, start, opts)
	return o
}

func finishOutcome(o *tracked, start time.Time, opts Options) {
	if opts.Detail {
		o.Duration = time.Since(start)
	}
}

func skippedOutcome(name string) tracked {
	return tracked{Outcome: Outcome{
		SkillName: name,
		Status:    StatusSkipped,
		Reason:    reasonCanceled,
	}}
}

func sortByName(outcomes []Outcome) {
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].SkillName < outcomes[j].SkillName
	})
}
