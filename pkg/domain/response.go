package domain

import "time"

// Response is the per-session state of one questionnaire: the current
// answers plus the result notice. It is created from the schema defaults
// when a session starts and discarded when the session ends; completed
// submissions are never archived.
type Response struct {
	ID        string    `json:"id"`
	Answers   Answers   `json:"answers"`
	Notice    Notice    `json:"notice"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResponse creates a response initialized from the given defaults.
func NewResponse(id string, defaults Answers) *Response {
	now := time.Now().UTC()
	return &Response{
		ID:        id,
		Answers:   defaults.Clone(),
		Notice:    Notice{Status: NoticeIdle},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the response.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	out := *r
	out.Answers = r.Answers.Clone()
	return &out
}
