package wizard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/life-wheel/internal/dto"
	"github.com/fadilmartias/life-wheel/internal/logger"
	"github.com/fadilmartias/life-wheel/internal/wheel"
)

// API is the part of Client the runner needs.
type API interface {
	Status(ctx context.Context) (StatusSnapshot, error)
	SaveRating(ctx context.Context, category, rating int) (dto.SaveRatingResponse, error)
	GenerateSummary(ctx context.Context) (dto.OverallSummaryResponse, error)
	Reset(ctx context.Context) error
}

// Runner executes commands, turns their results and terminal input into
// events, and redraws after every transition.
type Runner struct {
	api          API
	categories   []string
	in           io.Reader
	out          io.Writer
	log          *logger.Logger
	spinDuration time.Duration
	wheelPath    string

	events       chan Event
	lastScreen   string
	confirmReset bool
}

type RunnerOption func(*Runner)

func WithSpinDuration(d time.Duration) RunnerOption {
	return func(r *Runner) { r.spinDuration = d }
}

// WithWheelFile rewrites a PNG of the current wheel at path after every redraw.
func WithWheelFile(path string) RunnerOption {
	return func(r *Runner) { r.wheelPath = path }
}

func WithLogger(log *logger.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

func NewRunner(api API, cfg Config, in io.Reader, out io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		api:          api,
		categories:   cfg.Categories,
		in:           in,
		out:          out,
		log:          logger.NewNop(),
		spinDuration: wheel.SpinDuration,
		events:       make(chan Event, 8),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives the wizard until the user quits, input ends or ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go r.readLines(ctx, lines)

	state, cmds := Init(r.categories)
	r.draw(state)
	r.dispatch(ctx, cmds)

	for {
		var ev Event
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev = <-r.events:
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			var quit bool
			ev, quit = r.parseInput(state, line)
			if quit {
				return nil
			}
			if ev == nil {
				continue
			}
		}

		var next State
		next, cmds = Reduce(state, ev)
		state = next
		r.draw(state)
		r.dispatch(ctx, cmds)
	}
}

// parseInput maps a line of terminal input to an event for the current
// state. A nil event means the line was consumed without a transition.
func (r *Runner) parseInput(s State, line string) (Event, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "q" || line == "quit" {
		return nil, true
	}

	if r.confirmReset {
		r.confirmReset = false
		if line == "y" || line == "yes" {
			return ResetRequested{}, false
		}
		fmt.Fprintln(r.out, "Reset cancelled.")
		return nil, false
	}

	switch s.Step {
	case StepIntro:
		if line == "" || line == "s" || line == "start" {
			return StartPressed{}, false
		}
	case StepRating:
		if line == "" || line == "c" || line == "confirm" {
			return ConfirmPressed{}, false
		}
		if v, err := strconv.Atoi(line); err == nil {
			return SliderMoved{Value: v}, false
		}
	case StepSummary:
		if (line == "r" || line == "reset") && !s.Pending {
			r.confirmReset = true
			fmt.Fprintln(r.out, "Are you sure you want to start over? This will delete your current wheel. [y/N]")
			return nil, false
		}
	}
	return nil, false
}

func (r *Runner) dispatch(ctx context.Context, cmds []Command) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case StartSpin:
			spin := wheel.NewSpin(c.Category, c.Count)
			spin.Duration = r.spinDuration
			time.AfterFunc(spin.Duration, func() {
				r.post(ctx, SpinFinished{Category: spin.Target})
			})
		case ShowAlert:
			// the message is already part of the redrawn screen
			r.log.Warn("wizard request failed", "message", c.Message)
		default:
			go func() {
				if ev := r.execute(ctx, cmd); ev != nil {
					r.post(ctx, ev)
				}
			}()
		}
	}
}

// execute performs one API command and returns the event describing its
// outcome.
func (r *Runner) execute(ctx context.Context, cmd Command) Event {
	switch c := cmd.(type) {
	case FetchStatus:
		snap, err := r.api.Status(ctx)
		if err != nil {
			r.log.Warn("status check failed", "error", err)
			return StatusFailed{Err: err}
		}
		return StatusLoaded{Snapshot: snap}
	case SaveRating:
		resp, err := r.api.SaveRating(ctx, c.Category, c.Rating)
		if err != nil {
			return RequestFailed{Action: c, Err: err}
		}
		return RatingSaved{
			Category:     c.Category,
			Rating:       c.Rating,
			Summary:      resp.CategorySummary,
			NextCategory: resp.NextCategory,
			Complete:     resp.IsComplete,
		}
	case GenerateSummary:
		resp, err := r.api.GenerateSummary(ctx)
		if err != nil {
			return RequestFailed{Action: c, Err: err}
		}
		return SummaryGenerated{OverallSummary: resp.OverallSummary}
	case Reset:
		if err := r.api.Reset(ctx); err != nil {
			return RequestFailed{Action: c, Err: err}
		}
		return ResetDone{}
	}
	return nil
}

func (r *Runner) post(ctx context.Context, ev Event) {
	select {
	case r.events <- ev:
	case <-ctx.Done():
	}
}

func (r *Runner) readLines(ctx context.Context, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) draw(s State) {
	screen := Render(s)
	if screen == r.lastScreen {
		return
	}
	r.lastScreen = screen
	fmt.Fprint(r.out, "\n"+screen)

	if r.wheelPath != "" {
		if err := writeWheel(r.wheelPath, s); err != nil {
			r.log.Warn("write wheel image failed", "path", r.wheelPath, "error", err)
		}
	}
}

func writeWheel(path string, s State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := wheel.RenderPNG(f, wheel.Layout(WheelOptions(s)), 0); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
