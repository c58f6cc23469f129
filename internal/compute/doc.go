// Package compute splits the particle set into ranges and steps them.
//
// Two backends implement [Backend]:
//
//   - CPU: one goroutine per hardware thread, each owning one range
//   - Serial: a single range covering the whole set
//
// A CPU step for a set of N particles on T workers looks like:
//
//	ranges := compute.Partition(N, T) // [0,N/T) [N/T,2N/T) ... [.., N)
//	for each range, concurrently:
//	    physics.ResolvePairs(view, params)
//	    physics.Integrate(view, dt)
//	    physics.ResolveBorders(view, radius, damping)
//	wait for all
//
// Collisions are only resolved inside a range. Particles on either side of a
// range boundary pass through each other; the serial backend has no
// boundaries and catches every pair at T times the cost.
package compute
