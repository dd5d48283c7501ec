// Package domain defines the core entities of the learning progression
// engine: per-learner word review state, per-scope activity completion
// records, and the content units they gate.
package domain
