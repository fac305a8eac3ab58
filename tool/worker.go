package tool

import (
	pebblebuild "github.com/YclepticStudios/pebble-build"
	"github.com/YclepticStudios/pebble-build/build"
	"github.com/YclepticStudios/pebble-build/buildenv"
	"github.com/spf13/cobra"
)

// WorkerSymbol is the preprocessor symbol compiled into sources shared
// between the app and the background worker.
const WorkerSymbol = "PEBBLE_BACKGROUND_WORKER"

// BackgroundWorkerOptions holds the worker tool's flags.
type BackgroundWorkerOptions struct {
	Worker bool `flag:"worker" flagdescr:"Build the background worker" flaggroup:"Build"`
}

// Attach makes BackgroundWorkerOptions implement the Options interface.
func (o *BackgroundWorkerOptions) Attach(c *cobra.Command) error {
	return pebblebuild.Define(c, o)
}

// BackgroundWorker appends PEBBLE_BACKGROUND_WORKER to DEFINES when the
// build includes the background worker, so shared sources compile their
// worker-side paths.
type BackgroundWorker struct {
	opts *BackgroundWorkerOptions
}

// NewBackgroundWorker creates the worker tool; the worker is built by default.
func NewBackgroundWorker() *BackgroundWorker {
	return &BackgroundWorker{
		opts: &BackgroundWorkerOptions{
			Worker: true,
		},
	}
}

// Name implements build.Tool.
func (t *BackgroundWorker) Name() string {
	return "background-worker"
}

// Options implements build.Tool: it registers the --worker flag.
func (t *BackgroundWorker) Options(c *cobra.Command) error {
	return t.opts.Attach(c)
}

// Configure implements build.Tool.
func (t *BackgroundWorker) Configure(ctx *build.Context) error {
	if err := pebblebuild.Unmarshal(ctx.Command, t.opts); err != nil {
		return err
	}

	if t.opts.Worker {
		ctx.Env.AppendValue(buildenv.Defines, WorkerSymbol)
	}

	return nil
}
