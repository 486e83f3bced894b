// Package engine computes when a hybrid car's fuel savings pay back its
// purchase price premium over a conventional fuel car.
//
// The cost functions are pure: they take immutable Car and config.Settings
// values, perform no I/O and do not log. Analyze and Sweep compose them for
// the CLI and log at debug level through the context logger.
//
// All internal distances are kilometres and all fuel prices are per litre.
// Analyze converts results back to the session units.
package engine
