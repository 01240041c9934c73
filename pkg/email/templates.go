package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// OperatorEmailData holds the data for the operator notification
type OperatorEmailData struct {
	SiteName    string
	Name        string
	Email       string
	Phone       string
	PhoneDigits string
	InquiryType string
	Message     string
	ReceivedAt  string
}

// AcknowledgmentEmailData holds the data for the confirmation sent to the submitter
type AcknowledgmentEmailData struct {
	Name           string
	InquiryType    string
	SubmittedAt    string
	BusinessName   string
	Address        string
	Phones         []string
	BusinessEmail  string
	Website        string
	ResponseWindow string
}

// operatorHTMLTemplate is the HTML template for the operator notification
const operatorHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>New Inquiry</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', sans-serif;">
    <table width="100%" cellpadding="0" cellspacing="0" style="background: linear-gradient(135deg, #A1E3F9, #D1F8EF); padding: 40px 0;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background: #ffffff; border-radius: 16px; padding: 30px;">
                    <tr>
                        <td align="center" style="font-size: 30px; font-weight: 700; color: #3674B5; padding-bottom: 12px;">
                            &#128236; You've Got a New Message!
                        </td>
                    </tr>
                    <tr>
                        <td align="center" style="font-size: 16px; color: #555; padding-bottom: 30px;">
                            Someone filled out the {{.SiteName}} contact form.
                        </td>
                    </tr>
                    <tr>
                        <td style="background: #f4f6f8; border-radius: 12px; padding: 24px; color: #333;">
                            <div style="margin-bottom: 18px;"><strong style="color: #3674B5;">Name:</strong> {{.Name}}</div>
                            <div style="margin-bottom: 18px;"><strong style="color: #3674B5;">Email:</strong>
                                <a href="mailto:{{.Email}}" style="color: #578FCA;">{{.Email}}</a></div>
                            <div style="margin-bottom: 18px;"><strong style="color: #3674B5;">Phone:</strong>
                                <a href="tel:{{.PhoneDigits}}" style="color: #578FCA;">{{.Phone}}</a></div>
                            <div style="margin-bottom: 18px;"><strong style="color: #3674B5;">Inquiry Type:</strong> {{.InquiryType}}</div>
                            <div style="margin-top: 20px;">
                                <strong style="color: #3674B5;">Message:</strong>
                                <div style="margin-top: 12px; background: #E9F8F3; border-left: 5px solid #3674B5; border-radius: 8px; padding: 15px; white-space: pre-line;">{{.Message}}</div>
                            </div>
                            <div style="margin-top: 24px; font-size: 12px; color: #666; text-align: right;">Received on {{.ReceivedAt}}</div>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`

const operatorTextTemplate = `New inquiry from the {{.SiteName}} contact form

Name:         {{.Name}}
Email:        {{.Email}}
Phone:        {{.Phone}}
Inquiry Type: {{.InquiryType}}

Message:
{{.Message}}

Received on {{.ReceivedAt}}
`

const acknowledgmentHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Thank you for contacting {{.BusinessName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
        <h2 style="color: #3674B5; border-bottom: 2px solid #eee; padding-bottom: 10px;">Thank you, {{.Name}}!</h2>
        <p>We have received your <strong>{{.InquiryType}}</strong> inquiry submitted on {{.SubmittedAt}}.</p>
        <p>Our team will get back to you within {{.ResponseWindow}}.</p>
        <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin-top: 20px;">
            <p style="margin: 6px 0;"><strong>{{.BusinessName}}</strong></p>
            <p style="margin: 6px 0;">{{.Address}}</p>
            {{range .Phones}}<p style="margin: 6px 0;">Phone: <a href="tel:{{.}}">{{.}}</a></p>
            {{end}}<p style="margin: 6px 0;">Email: <a href="mailto:{{.BusinessEmail}}">{{.BusinessEmail}}</a></p>
            <p style="margin: 6px 0;">Website: <a href="{{.Website}}">{{.Website}}</a></p>
        </div>
        <p style="color: #666; font-size: 12px; margin-top: 20px; text-align: center;">
            This is an automated confirmation. Please do not reply to this email.
        </p>
    </div>
</body>
</html>`

const acknowledgmentTextTemplate = `Thank you, {{.Name}}!

We have received your {{.InquiryType}} inquiry submitted on {{.SubmittedAt}}.
Our team will get back to you within {{.ResponseWindow}}.

{{.BusinessName}}
{{.Address}}
{{range .Phones}}Phone: {{.}}
{{end}}Email: {{.BusinessEmail}}
Website: {{.Website}}

This is an automated confirmation. Please do not reply to this email.
`

var (
	operatorHTML       = htmltemplate.Must(htmltemplate.New("operator_html").Parse(operatorHTMLTemplate))
	operatorText       = texttemplate.Must(texttemplate.New("operator_text").Parse(operatorTextTemplate))
	acknowledgmentHTML = htmltemplate.Must(htmltemplate.New("ack_html").Parse(acknowledgmentHTMLTemplate))
	acknowledgmentText = texttemplate.Must(texttemplate.New("ack_text").Parse(acknowledgmentTextTemplate))
)

// RenderOperatorEmail returns the HTML and plain-text bodies of the operator notification
func RenderOperatorEmail(data OperatorEmailData) (html, text string, err error) {
	return render(operatorHTML, operatorText, data)
}

// RenderAcknowledgmentEmail returns the HTML and plain-text bodies of the submitter confirmation
func RenderAcknowledgmentEmail(data AcknowledgmentEmailData) (html, text string, err error) {
	return render(acknowledgmentHTML, acknowledgmentText, data)
}

func render(h *htmltemplate.Template, t *texttemplate.Template, data any) (string, string, error) {
	var htmlBody, textBody bytes.Buffer
	if err := h.Execute(&htmlBody, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s template: %w", h.Name(), err)
	}
	if err := t.Execute(&textBody, data); err != nil {
		return "", "", fmt.Errorf("failed to execute %s template: %w", t.Name(), err)
	}
	return htmlBody.String(), textBody.String(), nil
}
