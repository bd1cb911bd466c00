package models

import "time"

// ComplimentCancellationResponse is the sentinel response recorded when a
// complaint is cancelled by a compliment.
const ComplimentCancellationResponse = "Cancelled by compliment"

// Target entity kinds a feedback record may reference.
const (
	FeedbackTargetCustomer = "customer"
	FeedbackTargetChef     = "chef"
)

// Feedback is a complaint or compliment filed by a customer against a
// customer or chef.
type Feedback struct {
	FeedbackID         string       `json:"feedback_id"`
	CustomerID         string       `json:"customer_id"`
	FeedbackType       FeedbackType `json:"feedback_type"`
	TargetType         string       `json:"target_type"`
	TargetID           string       `json:"target_id"`
	Content            string       `json:"content"`
	IsVIP              bool         `json:"is_vip"`
	Timestamp          time.Time    `json:"timestamp"`
	Response           string       `json:"response,omitempty"`
	IsResolved         bool         `json:"is_resolved"`
	CanCancelComplaint bool         `json:"can_cancel_complaint"`
}

// NewFeedback creates an unresolved feedback record.
func NewFeedback(feedbackID, customerID string, feedbackType FeedbackType, targetType, targetID, content string, isVIP bool) *Feedback {
	fb := &Feedback{
		FeedbackID:         feedbackID,
		CustomerID:         customerID,
		FeedbackType:       feedbackType,
		TargetType:         targetType,
		TargetID:           targetID,
		Content:            content,
		IsVIP:              isVIP,
		Timestamp:          time.Now(),
		CanCancelComplaint: true,
	}
	emit(feedbackID, "feedback.created", map[string]any{
		"type":   string(feedbackType),
		"target": targetType + ":" + targetID,
		"is_vip": isVIP,
	})
	return fb
}

// AddResponse records a manager response and marks the feedback resolved.
func (f *Feedback) AddResponse(response string) {
	f.Response = response
	f.IsResolved = true
	emit(f.FeedbackID, "feedback.responded", nil)
}

// CancelWithCompliment resolves an unresolved, cancellable complaint with the
// sentinel response. It reports whether the cancellation occurred; calling it
// when the conditions do not hold is a no-op, not an error.
func (f *Feedback) CancelWithCompliment() bool {
	if f.FeedbackType != FeedbackComplaint || !f.CanCancelComplaint || f.IsResolved {
		return false
	}
	f.IsResolved = true
	f.Response = ComplimentCancellationResponse
	emit(f.FeedbackID, "feedback.cancelled_by_compliment", nil)
	return true
}
