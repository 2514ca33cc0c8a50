// Package canvas is the mock LMS integration surface. It stands in for a
// real Canvas API: FetchAll returns a fixed snapshot and SubmitAssignment
// simulates an upload. Any real integration replaces this client wholesale.
package canvas

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studydesk/core/docsync"
)

type Assignment struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	DueDate        string      `json:"dueDate"`
	Course         string      `json:"course"`
	SubmissionLink string      `json:"submissionLink"`
	Grade          null.String `json:"grade,omitempty"`
}

type Announcement struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	PostedDate string `json:"postedDate"`
}

type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Progress int    `json:"progress"`
}

// Snapshot is everything the LMS view renders, fetched in one shot.
type Snapshot struct {
	Assignments   []Assignment   `json:"assignments"`
	Announcements []Announcement `json:"announcements"`
	Courses       []Course       `json:"courses"`
}

var (
	ErrFileRequired      = errors.New("a file is required to submit an assignment")
	ErrAssignmentUnknown = errors.New("assignment not found")
)

// submitDelay approximates the latency of a real upload so callers exercise
// their pending/submitting states.
const submitDelay = 2 * time.Second

type Client struct {
	delay time.Duration
}

type Option func(*Client)

// WithSubmitDelay overrides the simulated upload latency. Tests pass 0.
func WithSubmitDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{delay: submitDelay}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAll returns the static snapshot wrapped in the Ready view shape the
// rest of the dashboard uses, so the LMS tab renders through the same path
// as the synchronized entities.
func (c *Client) FetchAll(ctx context.Context, userID string) (docsync.View[Snapshot], error) {
	if err := ctx.Err(); err != nil {
		return docsync.View[Snapshot]{State: docsync.StateErrored.String()}, err
	}
	return docsync.View[Snapshot]{
		State:   docsync.StateReady.String(),
		Records: []Snapshot{snapshot()},
	}, nil
}

// SubmitAssignment simulates uploading a submission file. The file reader
// must be non-nil; the upload always succeeds after the simulated delay.
func (c *Client) SubmitAssignment(ctx context.Context, assignmentID string, file io.Reader, filename string) error {
	if file == nil {
		return ErrFileRequired
	}
	found := false
	for _, a := range snapshot().Assignments {
		if a.ID == assignmentID {
			found = true
			break
		}
	}
	if !found {
		return errors.Wrapf(ErrAssignmentUnknown, "submitting %q", filename)
	}

	if _, err := io.Copy(io.Discard, file); err != nil {
		return errors.Wrapf(err, "reading submission file %q", filename)
	}

	select {
	case <-time.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func snapshot() Snapshot {
	return Snapshot{
		Assignments: []Assignment{
			{ID: "1", Name: "Math Homework", DueDate: "2024-12-01", Course: "Mathematics", SubmissionLink: "/canvas/submit/1", Grade: null.StringFrom("95%")},
			{ID: "2", Name: "History Essay", DueDate: "2024-12-05", Course: "History", SubmissionLink: "/canvas/submit/2"},
			{ID: "3", Name: "Science Project", DueDate: "2024-12-10", Course: "Science", SubmissionLink: "/canvas/submit/3", Grade: null.StringFrom("88%")},
		},
		Announcements: []Announcement{
			{ID: "1", Title: "Exam Schedule", Message: "Final exams will be held next week.", PostedDate: "2024-11-25"},
			{ID: "2", Title: "Holiday Break", Message: "School will be closed for the holidays from Dec 20 to Jan 5.", PostedDate: "2024-11-26"},
		},
		Courses: []Course{
			{ID: "1", Name: "Mathematics", Code: "MATH101", Progress: 75},
			{ID: "2", Name: "History", Code: "HIST201", Progress: 60},
			{ID: "3", Name: "Science", Code: "SCI301", Progress: 90},
		},
	}
}
