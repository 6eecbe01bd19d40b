package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/cgast/featspec/internal/config"
	"github.com/cgast/featspec/pkg/browser"
	"github.com/cgast/featspec/pkg/events"
	"github.com/cgast/featspec/pkg/spec"
)

// Runner executes spec files strictly sequentially: one browser
// session per spec, scenarios in listed order, steps in listed order
// with fail-fast inside each scenario.
type Runner struct {
	engine browser.Engine
	cfg    config.Config
	events events.Publisher
	out    io.Writer
}

// New creates a Runner. pub may be nil when no trace is wanted; out
// receives the human-readable progress lines.
func New(engine browser.Engine, cfg config.Config, pub events.Publisher, out io.Writer) *Runner {
	return &Runner{engine: engine, cfg: cfg, events: pub, out: out}
}

// Run executes all given spec files and folds their results into a
// Summary. Load and parse failures are reported, counted as draft
// failures, and never stop the remaining files from running.
func (r *Runner) Run(ctx context.Context, paths []string) Summary {
	runID := uuid.NewString()
	var sum Summary

	r.publish(events.Event{
		Type:   events.TypeRunStart,
		RunID:  runID,
		Detail: fmt.Sprintf("%d spec file(s)", len(paths)),
	})

	for _, path := range paths {
		res, err := r.RunFile(ctx, runID, path)
		if err != nil {
			fmt.Fprintf(r.out, "FAIL %s: %v\n", path, err)
			r.publish(events.Event{
				Type: events.TypeSpecError, RunID: runID, Spec: path, Detail: err.Error(),
			})
			sum.AddLoadFailure()
			continue
		}
		sum.Add(res)
	}

	r.publish(events.Event{Type: events.TypeRunEnd, RunID: runID})
	return sum
}

// RunFile loads and executes one spec file. The returned error is
// non-nil only for load/parse failures; execution failures are counted
// in the SpecResult.
func (r *Runner) RunFile(ctx context.Context, runID, path string) (SpecResult, error) {
	sp, err := spec.Load(path)
	if err != nil {
		return SpecResult{}, err
	}
	r.publish(events.Event{
		Type: events.TypeSpecLoaded, RunID: runID, Spec: path, Detail: sp.Feature,
	})
	fmt.Fprintf(r.out, "\n%s [%s]\n", sp.Feature, sp.Status)

	res := SpecResult{Status: sp.Status}

	sess, err := r.engine.NewSession(ctx)
	if err != nil {
		// The browser never came up, so nothing ran: every scenario in
		// this spec counts as failed under the spec's own status.
		fmt.Fprintf(r.out, "  FAIL session: %v\n", err)
		res.Failed = len(sp.Scenarios)
		return res, nil
	}
	defer sess.Close()

	env := &stepEnv{
		session:        sess,
		shotDir:        shotDirFor(path, r.cfg.ScreenshotDir),
		waitForTimeout: r.cfg.WaitForTimeout,
		assertTimeout:  r.cfg.AssertTimeout,
	}

	for _, sc := range sp.Scenarios {
		if err := r.runScenario(ctx, runID, env, path, sc); err != nil {
			res.Failed++
			shot := r.captureFailure(ctx, runID, env, path, sc.Name)
			if shot != "" {
				fmt.Fprintf(r.out, "  FAIL %s — %v (screenshot: %s)\n", sc.Name, err, shot)
			} else {
				fmt.Fprintf(r.out, "  FAIL %s — %v\n", sc.Name, err)
			}
			r.publish(events.Event{
				Type: events.TypeScenarioFail, RunID: runID,
				Spec: path, Scenario: sc.Name, Detail: err.Error(),
			})
			continue
		}
		res.Passed++
		fmt.Fprintf(r.out, "  PASS %s\n", sc.Name)
		r.publish(events.Event{
			Type: events.TypeScenarioPass, RunID: runID, Spec: path, Scenario: sc.Name,
		})
	}

	return res, nil
}

// runScenario executes steps in order, stopping at the first error.
// Steps after a failing one are never dispatched.
func (r *Runner) runScenario(ctx context.Context, runID string, env *stepEnv, specPath string, sc spec.Scenario) error {
	for _, st := range sc.Steps {
		fn, ok := dispatch[st.Action]
		if !ok {
			return &UnknownActionError{Action: string(st.Action)}
		}

		r.publish(events.Event{
			Type: events.TypeStepStart, RunID: runID,
			Spec: specPath, Scenario: sc.Name, Action: string(st.Action),
		})
		start := time.Now()
		err := fn(ctx, env, st)

		end := events.Event{
			Type: events.TypeStepEnd, RunID: runID,
			Spec: specPath, Scenario: sc.Name, Action: string(st.Action),
			Duration: time.Since(start),
		}
		if err != nil {
			end.Detail = err.Error()
		}
		r.publish(end)

		if err != nil {
			return err
		}
	}
	return nil
}

// captureFailure takes the failure screenshot for a scenario. Capture
// problems are reported but never mask the step error that got us here.
func (r *Runner) captureFailure(ctx context.Context, runID string, env *stepEnv, specPath, scenario string) string {
	png, err := env.session.Screenshot(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "  (screenshot failed: %v)\n", err)
		return ""
	}
	path, err := writeScreenshot(env.shotDir, failureShotName(specPath, scenario), png)
	if err != nil {
		fmt.Fprintf(r.out, "  (screenshot failed: %v)\n", err)
		return ""
	}
	r.publish(events.Event{
		Type: events.TypeScreenshot, RunID: runID,
		Spec: specPath, Scenario: scenario, Detail: path,
	})
	return path
}

func (r *Runner) publish(e events.Event) {
	if r.events != nil {
		r.events.Publish(e)
	}
}
