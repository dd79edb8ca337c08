// Package form implements the behavior of the RSVP pipeline over a
// questionnaire schema and an answer set: applying user input, deriving
// the disablement of dependent fields, validating a response, and
// composing the outbound message. All functions treat the answers they
// receive as a snapshot; none of them keep state.
package form
