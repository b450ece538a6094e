// Package field provides the ambient starfield particle simulation.
//
// A [Field] owns two particle pools and a drawing surface:
//
//   - [Star]: persistent point lights that drift down, wrap and twinkle
//   - [Streak]: transient falling lines that fade out and get pruned
//   - [Surface]: the 2-D raster the field draws into every tick
//
// Hosts drive the field through an [Animator], which asks a [Scheduler] for
// the next frame and re-registers itself after every frame.
//
// # Example
//
//	f := field.New(surface, rand.New(rand.NewSource(1)), field.DefaultOptions())
//	f.Seed(800, 600)
//	q := field.NewFrameQueue()
//	a := field.NewAnimator(f, q)
//	a.Start()
//	q.Fire(time.Now()) // from the host's per-frame callback
//
// # Thread Safety
//
// Field is NOT thread-safe. Animator and FrameQueue may be stopped from any
// goroutine but frames must be fired from a single one.
package field
