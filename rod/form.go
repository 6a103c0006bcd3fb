package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/dropwatch"
)

// Default form selectors.
const (
	DefaultFormInputSelector  = "input#url"
	DefaultFormSubmitSelector = "#submitBtn"
)

// Ensure FormSink implements dropwatch.Sink at compile time.
var _ dropwatch.Sink = (*FormSink)(nil)

// FormSink submits each live link to a web form before recording it in the
// wrapped sink. A failed submission fails the append and nothing is recorded.
type FormSink struct {
	page    Page
	next    dropwatch.Sink
	formURL string
	input   string
	submit  string
	settle  time.Duration
}

// FormOption configures a FormSink.
type FormOption func(*FormSink)

// WithFormSelectors overrides the input and submit selectors.
func WithFormSelectors(input, submit string) FormOption {
	return func(s *FormSink) {
		s.input = input
		s.submit = submit
	}
}

// WithFormSettle sets the wait after submitting.
func WithFormSettle(d time.Duration) FormOption {
	return func(s *FormSink) {
		s.settle = d
	}
}

// NewFormSink creates a FormSink posting to formURL on page and recording in next.
func NewFormSink(page Page, formURL string, next dropwatch.Sink, opts ...FormOption) *FormSink {
	s := &FormSink{
		page:    page,
		next:    next,
		formURL: formURL,
		input:   DefaultFormInputSelector,
		submit:  DefaultFormSubmitSelector,
		settle:  dropwatch.DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append submits rec.Link to the form and then appends rec to the next sink.
func (s *FormSink) Append(ctx context.Context, rec *dropwatch.DeliveryRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := s.page.Navigate(ctx, s.formURL); err != nil {
		return fmt.Errorf("opening form: %w", err)
	}
	if err := s.page.Fill(ctx, s.input, rec.Link); err != nil {
		return fmt.Errorf("filling form: %w", err)
	}
	clicked, err := s.page.ClickFirst(ctx, s.submit)
	if err != nil {
		return fmt.Errorf("submitting form: %w", err)
	}
	if !clicked {
		return dropwatch.Errorf(dropwatch.ENOTFOUND, "submit control %q not found on %s", s.submit, s.formURL)
	}
	if err := s.page.Settle(ctx, s.settle); err != nil {
		return err
	}
	return s.next.Append(ctx, rec)
}

// Rows delegates to the next sink.
func (s *FormSink) Rows(ctx context.Context) (int, error) {
	return s.next.Rows(ctx)
}
