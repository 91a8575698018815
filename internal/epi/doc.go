// Package epi provides core primitives for compartmental epidemic
// simulation.
//
// The package defines the fundamental interfaces and types shared by the
// model, runner, and integrator packages:
//
//   - [State]: vector of compartment sizes
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper interface for continuous runs
//   - [Policy]: intervention policy producing a control input
//   - [Metric]: streaming observation over a run
//
// # Thread Safety
//
// None of the types here are safe for concurrent mutation. Independent
// runs over separate models need no synchronization beyond collecting
// their results; see the sim package's Ensemble.
package epi
