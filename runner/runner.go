package runner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/krehermann/vyantra/vm"
	"go.uber.org/zap"
)

var (
	defaultMaxSteps = 1 << 20

	ErrStepLimit = errors.New("step limit reached")
)

// Opts configures a Runner. Zero values are replaced with defaults.
type Opts struct {
	ID     string
	Logger *zap.Logger
	// MaxSteps bounds how many instructions a single program may
	// execute. It guards against runaway jump loops.
	MaxSteps int
	// StackDepth bounds the operand stack of every VM. 0 is unbounded.
	StackDepth int
}

// Runner is a host around the vm. It owns the policies the vm itself
// doesn't have: step limits, cancellation and batches.
type Runner struct {
	Opts
	logger *zap.Logger
}

// Result is the state of a vm after a run
type Result struct {
	State     vm.State
	Steps     int
	IP        int
	Stack     []int32
	Registers vm.Registers
	Err       error
}

// Top returns the top of the result stack
func (r *Result) Top() (int32, bool) {
	if len(r.Stack) == 0 {
		return 0, false
	}
	return r.Stack[len(r.Stack)-1], true
}

func NewRunner(opts Opts) *Runner {
	if opts.Logger == nil {
		opts.Logger, _ = zap.NewDevelopment()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = defaultMaxSteps
	}
	if opts.ID == "" {
		opts.ID = strconv.FormatInt(int64(rand.Intn(1000)), 10)
	}
	opts.Logger = opts.Logger.Named(opts.ID)

	return &Runner{
		Opts:   opts,
		logger: opts.Logger.Named("runner"),
	}
}

// Run executes prog on a fresh vm. A faulted program, an exhausted step
// budget or a cancelled ctx are all reported as an error; the returned
// Result is always populated so the vm can still be inspected.
func (r *Runner) Run(ctx context.Context, prog *vm.Program) (*Result, error) {
	machine := vm.NewVM(prog,
		vm.LoggerOpt(r.Opts.Logger),
		vm.StackDepthOpt(r.StackDepth),
	)

	var err error
	for !machine.State().Terminal() {
		if machine.Steps() >= r.MaxSteps {
			err = fmt.Errorf("%w: %d", ErrStepLimit, r.MaxSteps)
			break
		}
		if err = ctx.Err(); err != nil {
			break
		}
		_, err = machine.Step()
	}

	res := resultOf(machine)
	if err != nil {
		r.logger.Info("program stopped",
			zap.Stringer("state", res.State),
			zap.Int("steps", res.Steps),
			zap.Int("ip", res.IP),
			zap.Error(err),
		)
		return res, fmt.Errorf("runner %s: %w", r.ID, err)
	}

	r.logger.Debug("program halted",
		zap.Int("steps", res.Steps),
		zap.Int32s("stack", res.Stack),
		zap.Any("registers", res.Registers.Map()),
	)
	return res, nil
}

// RunBatch runs each program on its own vm concurrently. Results and
// errors are indexed like progs.
func (r *Runner) RunBatch(ctx context.Context, progs []*vm.Program) ([]*Result, []error) {
	results := make([]*Result, len(progs))
	errs := make([]error, len(progs))

	wg := sync.WaitGroup{}
	for i, prog := range progs {
		wg.Add(1)
		go func(i int, prog *vm.Program) {
			defer wg.Done()
			results[i], errs[i] = r.Run(ctx, prog)
		}(i, prog)
	}
	wg.Wait()

	r.logger.Debug("batch done",
		zap.Int("programs", len(progs)),
	)
	return results, errs
}

func resultOf(machine *vm.VM) *Result {
	return &Result{
		State:     machine.State(),
		Steps:     machine.Steps(),
		IP:        machine.IP(),
		Stack:     machine.Stack(),
		Registers: machine.Registers(),
		Err:       machine.Err(),
	}
}
