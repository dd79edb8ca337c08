// Package domain contains the core data model of the RSVP pipeline:
// field descriptors, answer values, per-session response state, delivery
// outcomes and the result notice. It has no dependencies; behavior lives
// in pkg/form and pkg/session.
package domain
