package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	confirmationHTML *template.Template
	confirmationText *texttemplate.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	funcs := template.FuncMap{"join": strings.Join}

	confirmationHTML, err := template.New("confirmation").Funcs(funcs).Parse(bookingConfirmationTemplate)
	if err != nil {
		return nil, fmt.Errorf("email: parse confirmation html: %w", err)
	}
	confirmationText, err := texttemplate.New("confirmationText").Funcs(texttemplate.FuncMap(funcs)).Parse(bookingConfirmationText)
	if err != nil {
		return nil, fmt.Errorf("email: parse confirmation text: %w", err)
	}

	return &TemplateManager{
		confirmationHTML: confirmationHTML,
		confirmationText: confirmationText,
	}, nil
}

// BookingData holds the dynamic data for the booking confirmation email.
type BookingData struct {
	OrderID     string
	Vehicle     string
	Origin      string
	Destination string
	Date        string
	Time        string
	Price       string
	Items       []string
}

// BookingConfirmation renders the subject, plain text and HTML bodies.
func (tm *TemplateManager) BookingConfirmation(data BookingData) (subject, text, html string, err error) {
	var htmlBody, textBody bytes.Buffer
	if err := tm.confirmationHTML.Execute(&htmlBody, data); err != nil {
		return "", "", "", err
	}
	if err := tm.confirmationText.Execute(&textBody, data); err != nil {
		return "", "", "", err
	}
	subject = fmt.Sprintf("Your move on %s is booked", data.Date)
	return subject, textBody.String(), htmlBody.String(), nil
}

// --- Template Definitions ---

const bookingConfirmationTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Booking Confirmed</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Your move is booked!</h2>
	<p>Booking reference: <strong>{{.OrderID}}</strong></p>
	<table>
		<tr><td>Vehicle</td><td>{{.Vehicle}}</td></tr>
		<tr><td>From</td><td>{{.Origin}}</td></tr>
		<tr><td>To</td><td>{{.Destination}}</td></tr>
		<tr><td>When</td><td>{{.Date}}, {{.Time}}</td></tr>
		<tr><td>Price</td><td>{{.Price}}</td></tr>
	</table>
	{{if .Items}}<p>Checklist: {{join .Items ", "}}</p>{{end}}
	<p>You can cancel this booking from your profile while it is still pending.</p>
</body>
</html>
`

const bookingConfirmationText = `Your move is booked!
Booking reference: {{.OrderID}}
Vehicle: {{.Vehicle}}
From: {{.Origin}}
To: {{.Destination}}
When: {{.Date}}, {{.Time}}
Price: {{.Price}}
{{if .Items}}Checklist: {{join .Items ", "}}
{{end}}`
