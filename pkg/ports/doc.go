// Package ports defines the driven-side contracts of the RSVP pipeline:
// where session responses are kept and how composed messages leave the
// system. Adapters live under pkg/adapters; contract test suites here let
// every adapter prove the same behavior.
package ports
