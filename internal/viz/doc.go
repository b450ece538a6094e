// Package viz hosts the starfield in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model driving a field.Animator from tick messages
//   - [Canvas]: Braille-based field.Surface, 2x4 dots per cell
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Spawn one streak
//	A     - Toggle automatic streak spawning
//	R     - Reseed stars
//	T     - Cycle color themes
//	C     - Toggle cursor ring
//	+/-   - Raise/lower the dot threshold
//	?     - Show help overlay
//
// Window resizes reach the field as tea.WindowSizeMsg and reseed it
// synchronously.
package viz
