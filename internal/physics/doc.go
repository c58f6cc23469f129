// Package physics resolves collisions and advances particles.
//
// Every routine here operates on a [dynamo.View] or on a single particle, so
// the same code serves one worker's partition or the whole set:
//
//   - [ResolveBorder]: clamp into the box and bounce with damping
//   - [ResolvePairs]: equal-mass impulse and overlap correction, O(k²)
//   - [Integrate]: explicit Euler position update
//   - [ApplyGravity], [ApplyMouse], [ApplyImpulse]: external velocity changes
//
// There is no broad phase. Every pair inside a view is tested.
//
//	v := set.View(dynamo.Range{Start: 0, End: set.Len()})
//	contacts := physics.ResolvePairs(v, params)
//	physics.Integrate(v, dt)
package physics
