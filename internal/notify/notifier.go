package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Message is one outbound email. Text improves deliverability; HTML is the
// primary body.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sink delivers a single message. Implementations must be safe for
// concurrent use.
type Sink interface {
	Send(ctx context.Context, msg Message) error
}

const dispatchTimeout = 15 * time.Second

// Notifier dispatches messages fire-and-forget: callers return immediately
// and delivery failures are logged, never surfaced. Nothing on an
// operation's success path waits on a Sink.
type Notifier struct {
	sink    Sink
	log     *zap.Logger
	baseURL string
	wg      sync.WaitGroup
}

func New(sink Sink, log *zap.Logger, baseURL string) *Notifier {
	return &Notifier{sink: sink, log: log, baseURL: baseURL}
}

// Dispatch hands msg to the sink on its own goroutine.
func (n *Notifier) Dispatch(msg Message) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := n.sink.Send(ctx, msg); err != nil {
			n.log.Warn("notification delivery failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	}()
}

// Wait blocks until in-flight dispatches finish. Used at shutdown and in tests.
func (n *Notifier) Wait() { n.wg.Wait() }

func (n *Notifier) dealURL(dealID string) string {
	return fmt.Sprintf("%s/partner/deals/%s", n.baseURL, dealID)
}

func (n *Notifier) trackingURL(token string) string {
	return fmt.Sprintf("%s/status/%s", n.baseURL, token)
}

// PartnerStageChanged tells the referring partner their deal moved stage.
func (n *Notifier) PartnerStageChanged(email, referenceNumber, dealID, stageLabel string) {
	n.Dispatch(partnerMessage(
		email,
		fmt.Sprintf("Deal %s — %s", referenceNumber, stageLabel),
		referenceNumber,
		fmt.Sprintf("This deal has been moved to %s.", stageLabel),
		n.dealURL(dealID),
	))
}

// PartnerLenderAssigned tells the referring partner a lender was assigned.
func (n *Notifier) PartnerLenderAssigned(email, referenceNumber, dealID, lenderName string) {
	n.Dispatch(partnerMessage(
		email,
		fmt.Sprintf("Lender assigned — %s", referenceNumber),
		referenceNumber,
		fmt.Sprintf("%s has been assigned to your deal.", lenderName),
		n.dealURL(dealID),
	))
}

// BorrowerStageChanged tells a tracking-enabled borrower their application
// moved stage.
func (n *Notifier) BorrowerStageChanged(email, firstName, referenceNumber, stageLabel, token string) {
	n.Dispatch(borrowerMessage(
		email,
		firstName,
		fmt.Sprintf("Your loan application — %s", stageLabel),
		fmt.Sprintf("Your application (%s) has been updated to: %s. You can track progress using the link below.", referenceNumber, stageLabel),
		n.trackingURL(token),
	))
}

// BorrowerLenderAssigned tells a tracking-enabled borrower a lender was
// assigned to their application.
func (n *Notifier) BorrowerLenderAssigned(email, firstName, referenceNumber, lenderName, token string) {
	n.Dispatch(borrowerMessage(
		email,
		firstName,
		fmt.Sprintf("Lender assigned to your application — %s", referenceNumber),
		fmt.Sprintf("A lender (%s) has been assigned to your application. You can track progress using the link below.", lenderName),
		n.trackingURL(token),
	))
}

// BorrowerTrackingLink sends the borrower their tokenized status link.
func (n *Notifier) BorrowerTrackingLink(email, firstName, referenceNumber, token string) {
	n.Dispatch(borrowerMessage(
		email,
		firstName,
		fmt.Sprintf("Your loan application — %s", referenceNumber),
		fmt.Sprintf("Your loan application has been submitted. Reference: %s. You can track its progress using the link below.", referenceNumber),
		n.trackingURL(token),
	))
}

func partnerMessage(to, subject, referenceNumber, body, dealURL string) Message {
	return Message{
		To:      to,
		Subject: subject,
		Text:    fmt.Sprintf("Deal Update — %s\n\n%s\n\nView deal: %s\n\n— LoanFlow", referenceNumber, body, dealURL),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 500px; margin: 0 auto;">
<h2>Deal Update — %s</h2>
<p>%s</p>
<p style="margin: 24px 0;"><a href="%s" style="background: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View Deal</a></p>
<p style="color: #666; font-size: 14px;">— LoanFlow</p>
</div>`, referenceNumber, body, dealURL),
	}
}

func borrowerMessage(to, firstName, subject, body, trackingURL string) Message {
	name := firstName
	if name == "" {
		name = "there"
	}
	return Message{
		To:      to,
		Subject: subject,
		Text:    fmt.Sprintf("Hi %s,\n\n%s\n\nTrack your application: %s\n\n— LoanFlow", name, body, trackingURL),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 520px; margin: 0 auto; color: #1f2937;">
<h2 style="font-size: 18px; font-weight: 600;">Your loan application</h2>
<p>Hi %s,</p>
<p>%s</p>
<p style="margin: 24px 0;"><a href="%s" style="background: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; display: inline-block;">View your status</a></p>
<p style="color: #6b7280; font-size: 14px;">— LoanFlow</p>
</div>`, name, body, trackingURL),
	}
}
