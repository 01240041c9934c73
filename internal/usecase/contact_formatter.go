package usecase

import (
	"fmt"
	"time"

	"go-contact-relay/config"
	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/email"
)

// TimestampLayout renders like "Sunday, October 18, 2026 at 10:30 AM"
const TimestampLayout = "Monday, January 2, 2006 at 03:04 PM"

// FormattedMessages are the emails derived from one submission
type FormattedMessages struct {
	Operator       email.Message
	Acknowledgment *email.Message // nil when acknowledgments are disabled
}

// ContactFormatter builds the operator notification and the optional
// submitter acknowledgment.
type ContactFormatter struct {
	siteName      string
	from          string
	operatorEmail string
	acknowledge   bool
	location      *time.Location
	business      config.BusinessProfile
}

func NewContactFormatter(opts ContactOptions) *ContactFormatter {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &ContactFormatter{
		siteName:      opts.SiteName,
		from:          email.FormatAddress(opts.SiteName, opts.FromEmail),
		operatorEmail: opts.OperatorEmail,
		acknowledge:   opts.SendAcknowledgment,
		location:      loc,
		business:      opts.Business,
	}
}

// FormatTimestamp renders t in loc; both messages of a submission share it.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampLayout)
}

func (f *ContactFormatter) Format(sub *domain.ContactSubmission, at time.Time) (*FormattedMessages, error) {
	stamp := FormatTimestamp(at, f.location)

	html, text, err := email.RenderOperatorEmail(email.OperatorEmailData{
		SiteName:    f.siteName,
		Name:        sub.Name,
		Email:       sub.Email,
		Phone:       sub.Phone,
		PhoneDigits: sub.PhoneDigits,
		InquiryType: sub.InquiryType,
		Message:     sub.Message,
		ReceivedAt:  stamp,
	})
	if err != nil {
		return nil, err
	}

	out := &FormattedMessages{
		Operator: email.Message{
			From:    f.from,
			To:      f.operatorEmail,
			ReplyTo: sub.Email,
			Subject: fmt.Sprintf("📬 New Inquiry: %s from %s", sub.InquiryType, sub.Name),
			HTML:    html,
			Text:    text,
		},
	}

	if !f.acknowledge {
		return out, nil
	}

	ackHTML, ackText, err := email.RenderAcknowledgmentEmail(email.AcknowledgmentEmailData{
		Name:           sub.Name,
		InquiryType:    sub.InquiryType,
		SubmittedAt:    stamp,
		BusinessName:   f.business.Name,
		Address:        f.business.Address,
		Phones:         f.business.Phones,
		BusinessEmail:  f.business.Email,
		Website:        f.business.Website,
		ResponseWindow: f.business.ResponseWindow,
	})
	if err != nil {
		return nil, err
	}

	out.Acknowledgment = &email.Message{
		From:    f.from,
		To:      sub.Email,
		Subject: fmt.Sprintf("Thank you for contacting %s", f.business.Name),
		HTML:    ackHTML,
		Text:    ackText,
	}
	return out, nil
}
