// Package viz is the terminal frame driver.
//
// It runs a Bubble Tea program that steps a [sim.World] on every tick and
// draws the particles on a Braille [Canvas], two by four dots per cell:
//
//   - [Model]: the Bubble Tea model holding the world and the input state
//   - [Canvas]: Braille pixel canvas with world-to-dot mapping
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Random impulse to every particle
//	Up    - Gravity off
//	Down  - Gravity on
//	P     - Pause/Resume
//	R     - Reset to initial scatter
//	T     - Cycle color themes
//	Q     - Quit
//
// Left mouse button repels particles near the cursor, right button
// attracts them.
package viz
