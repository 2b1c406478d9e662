package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// Message is a rendered notification ready for the SMTP relay.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2 style="margin-bottom: 4px;">{{.Heading}}</h2>
  {{if .Code}}<p style="margin-top: 0; color: #666;">Ticket {{.Code}}</p>{{end}}
  <p>{{.Body}}</p>
  <p style="color: #999; font-size: 12px;">This message was sent by the helpdesk. Do not reply to this address.</p>
</body>
</html>`))

type ticketTemplateData struct {
	Heading string
	Code    string
	Body    string
}

func renderTicketMail(subject, heading, code, body string) Message {
	var buf bytes.Buffer
	// Template execution over a bytes.Buffer with static template cannot fail.
	_ = ticketTemplate.Execute(&buf, ticketTemplateData{Heading: heading, Code: code, Body: body})
	text := fmt.Sprintf("%s\n\n%s", heading, body)
	if code != "" {
		text = fmt.Sprintf("%s\n\nTicket %s\n%s", heading, code, body)
	}
	return Message{
		Subject: subject,
		HTML:    buf.String(),
		Text:    text,
	}
}

// TicketCreated renders the intake acknowledgment.
func TicketCreated(code, title string) Message {
	return renderTicketMail(
		fmt.Sprintf("[%s] Ticket received", code),
		"We received your request",
		code,
		fmt.Sprintf("Your ticket %q was created and will be triaged shortly.", title),
	)
}

// TicketStatusChanged renders a status notification.
func TicketStatusChanged(code, oldStatus, newStatus string) Message {
	return renderTicketMail(
		fmt.Sprintf("[%s] Status updated", code),
		"Your ticket status changed",
		code,
		fmt.Sprintf("Status moved from %s to %s.", oldStatus, newStatus),
	)
}

// TicketAssigned renders an assignment notification.
func TicketAssigned(code, assigneeName string) Message {
	return renderTicketMail(
		fmt.Sprintf("[%s] Agent assigned", code),
		"An agent is on it",
		code,
		fmt.Sprintf("%s is now handling your ticket.", assigneeName),
	)
}

// TicketCommented renders a public-reply notification.
func TicketCommented(code string) Message {
	return renderTicketMail(
		fmt.Sprintf("[%s] New reply", code),
		"Your ticket has a new reply",
		code,
		"Sign in to the helpdesk to read the full reply.",
	)
}

// PasswordReset renders the reset-token mail.
func PasswordReset(token string) Message {
	return renderTicketMail(
		"Password reset requested",
		"Reset your password",
		"",
		fmt.Sprintf("Use this code to reset your password: %s. If you did not request a reset, ignore this message.", token),
	)
}
