// Package dynamo provides the core value types of the particle simulation.
//
// A particle is nothing more than an index into the two parallel arrays of a
// [Set]:
//
//   - [Vec]: 2D vector (glm-style, backed by mathgl)
//   - [Set]: positions and velocities of N particles, fixed length
//   - [Range]: half-open index range [Start, End)
//   - [View]: exclusively owned window over a Set for one worker
//   - [Params]: per-frame immutable simulation parameters
//
// # Example
//
//	set := dynamo.NewSet(2000)
//	ranges := compute.Partition(set.Len(), runtime.NumCPU())
//	v := set.View(ranges[0])
//	physics.Integrate(v, dt)
//
// # Thread Safety
//
// A Set is NOT safe for concurrent use. Workers must only touch the View they
// were handed; views built from disjoint ranges never alias each other.
package dynamo
