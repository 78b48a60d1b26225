// Package event turns every engine action into a record.  Records are kept
// in an ordered Journal and can additionally be streamed to a Listener over
// a messaging.Queue, so that rendering stays outside the engine.
package event
