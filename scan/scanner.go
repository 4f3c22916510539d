package scan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prasanaa-pigment/n8n-sub000/observe"
	"github.com/prasanaa-pigment/n8n-sub000/pattern"
	"github.com/prasanaa-pigment/n8n-sub000/workflow"
)

// scanContext is the shared read-only input of every check: the
// workflow, the capability tags from the classification pass, the
// trigger reachability results, and any extra secret signatures.
type scanContext struct {
	wf           *workflow.Workflow
	tags         map[string]capabilities
	reaches      []reachability
	extraSecrets []pattern.SecretSignature
}

// checkFn is one rule: a pure function of the scan context. Checks are
// independent and order-insensitive among themselves; the registry
// index only breaks ties when findings of equal severity are sorted.
type checkFn func(*scanContext) ([]Finding, error)

type check struct {
	name string
	fn   checkFn
}

// checkRegistry fixes the tie-break order of all checks. Appending is
// safe; reordering changes report output.
var checkRegistry = []check{
	{"hardcoded-secrets", checkHardcodedSecrets},
	{"pii-exposure", checkPII},
	{"insecure-config", checkInsecureConfig},
	{"expression-risk", checkExpressionRisk},
	{"code-injection", checkCodeInjection},
	{"ssrf-risk", checkSSRF},
	{"data-exposure", checkDataExposure},
	{"fan-out", checkFanOut},
	{"ai-prompt-injection", checkPromptInjection},
	{"ai-secret-in-prompt", checkSecretInPrompt},
	{"ai-trigger-direct", checkTriggerToAI},
	{"ai-over-privileged-tool", checkOverPrivilegedTools},
	{"ai-output-external", checkAIToExternal},
	{"ai-chaining", checkAIChaining},
}

// Scanner runs the full check catalog over one workflow at a time. The
// zero value is usable; options configure observation, extra secret
// signatures and parallelism.
type Scanner struct {
	sink         observe.Sink
	extraSecrets []pattern.SecretSignature
	parallel     bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSink attaches a progress event sink.
func WithSink(sink observe.Sink) Option {
	return func(s *Scanner) { s.sink = sink }
}

// WithRulePack appends extra secret signatures after the built-ins.
func WithRulePack(sigs []pattern.SecretSignature) Option {
	return func(s *Scanner) { s.extraSecrets = append(s.extraSecrets, sigs...) }
}

// WithParallel runs checks on separate goroutines. Checks are pure
// functions of an immutable context, so this changes throughput only:
// results are collected by registry index and the report is
// byte-identical to a sequential run.
func WithParallel(parallel bool) Option {
	return func(s *Scanner) { s.parallel = parallel }
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{sink: observe.NoopSink{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.sink == nil {
		s.sink = observe.NoopSink{}
	}
	return s
}

// Scan analyzes one workflow and returns the report. It never fails:
// malformed-but-decodable input degrades to fewer findings, and a
// check that panics or aborts is reported as a single "scan
// incomplete" finding instead of sinking the whole scan.
func (s *Scanner) Scan(ctx context.Context, wf *workflow.Workflow, catalog workflow.Catalog) *Report {
	if wf == nil {
		wf = &workflow.Workflow{}
	}
	// The scan ID is derived from the workflow, not freshly random:
	// scanning the same graph twice must yield an identical report.
	scanID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("workflow-scan:"+wf.Name)).String()
	started := time.Now()
	s.emit(ctx, observe.Event{Kind: observe.KindScan, Status: observe.StatusStarted, ScanID: scanID, WorkflowName: wf.Name})

	sc := &scanContext{
		wf:           wf,
		tags:         classify(wf, catalog),
		extraSecrets: s.extraSecrets,
	}
	for _, node := range wf.AllNodes() {
		if sc.tags[node.Name].trigger {
			sc.reaches = append(sc.reaches, reachFrom(wf, node.Name))
		}
	}

	perCheck := make([][]Finding, len(checkRegistry))
	if s.parallel {
		var wg sync.WaitGroup
		for i, c := range checkRegistry {
			i, c := i, c
			wg.Add(1)
			go func() {
				defer wg.Done()
				perCheck[i] = s.runCheck(ctx, scanID, c, sc)
			}()
		}
		wg.Wait()
	} else {
		for i, c := range checkRegistry {
			perCheck[i] = s.runCheck(ctx, scanID, c, sc)
		}
	}

	var findings []Finding
	for _, fs := range perCheck {
		findings = append(findings, fs...)
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() < findings[j].Severity.Rank()
	})

	report := &Report{
		ScanID:           scanID,
		WorkflowName:     wf.Name,
		Findings:         findings,
		WorkflowOverview: buildOverview(wf, sc.tags),
		ExternalServices: externalServices(wf, sc.tags),
		DataFlowPaths:    dataFlowPaths(sc),
	}

	s.emit(ctx, observe.Event{
		Kind:         observe.KindScan,
		Status:       observe.StatusCompleted,
		ScanID:       scanID,
		WorkflowName: wf.Name,
		Findings:     len(findings),
		DurationMs:   time.Since(started).Milliseconds(),
	})
	return report
}

// runCheck is the per-check failure boundary: a panic or an aborted
// walk becomes one info finding and the remaining checks still run.
func (s *Scanner) runCheck(ctx context.Context, scanID string, c check, sc *scanContext) (findings []Finding) {
	started := time.Now()
	s.emit(ctx, observe.Event{Kind: observe.KindCheck, Status: observe.StatusStarted, ScanID: scanID, Check: c.name})

	defer func() {
		if r := recover(); r != nil {
			findings = append(findings, incompleteFinding(c.name, fmt.Sprintf("%v", r)))
			s.emit(ctx, observe.Event{Kind: observe.KindCheck, Status: observe.StatusFailed, ScanID: scanID, Check: c.name, Error: fmt.Sprintf("%v", r)})
		}
	}()

	findings, err := c.fn(sc)
	if err != nil {
		findings = append(findings, incompleteFinding(c.name, err.Error()))
		s.emit(ctx, observe.Event{Kind: observe.KindCheck, Status: observe.StatusFailed, ScanID: scanID, Check: c.name, Error: err.Error(), DurationMs: time.Since(started).Milliseconds()})
		return findings
	}

	s.emit(ctx, observe.Event{
		Kind:       observe.KindCheck,
		Status:     observe.StatusCompleted,
		ScanID:     scanID,
		Check:      c.name,
		Findings:   len(findings),
		DurationMs: time.Since(started).Milliseconds(),
	})
	return findings
}

func incompleteFinding(checkName, reason string) Finding {
	return Finding{
		Severity:    SeverityInfo,
		Category:    CategoryInsecureConfig,
		Title:       fmt.Sprintf("Scan incomplete for check %s", checkName),
		Description: fmt.Sprintf("Check %s did not finish: %s. Results from other checks are unaffected.", checkName, reason),
	}
}

func (s *Scanner) emit(ctx context.Context, event observe.Event) {
	event.Normalize()
	// Sinks are best-effort; a failing sink must not affect scan output.
	_ = s.sink.Emit(ctx, event)
}
