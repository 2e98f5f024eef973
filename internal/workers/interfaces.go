// Package workers runs the phases of a sync run one after another.
// It defines the Worker interface and a Workers aggregate that runs a fixed
// sequence of workers in a unified way.
package workers

import "context"

// Worker is one step of a sequential pipeline.
//
// Run blocks for the duration of the work. A non-nil error stops the
// pipeline; later workers are not started.
//
// Example implementation:
//
//	type uploadPhase struct{}
//
//	func (w *uploadPhase) Name() string { return "upload" }
//
//	func (w *uploadPhase) Run(ctx context.Context) error {
//	    // process pending uploads
//	    return nil
//	}
type Worker interface {
	Name() string
	Run(ctx context.Context) error
}
