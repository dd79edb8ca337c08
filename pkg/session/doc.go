/*
Package session orchestrates the lifetime of a questionnaire session:
starting it with schema defaults, applying field edits, and running the
submission pipeline (validate, compose, deliver, record the notice).

The Manager serializes access per session with reference-counted locks,
so concurrent edits to the same session never interleave. Delivery runs
outside the session lock; an in-flight guard makes repeated submission
attempts during an outstanding delivery a rejected no-op.
*/
package session
