package notification

import (
	"fmt"
	"strings"
	"time"
)

const (
	staffSubject = "New Application Received"
	timeLayout   = "1/2/2006, 3:04:05 PM"
)

// Sender holds the addresses and branding used to build messages
type Sender struct {
	From         string
	StaffAddress string
	CompanyName  string
}

// StaffMessage builds the notification sent to the hiring team. The stored
// resume rides along as an attachment when the applicant has one.
func StaffMessage(s Sender, a Applicant) *Message {
	var b strings.Builder
	b.WriteString("New Application Received\n\n")
	b.WriteString("Applicant Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", a.Name)
	fmt.Fprintf(&b, "Email: %s\n", a.Email)
	fmt.Fprintf(&b, "Subject: %s\n", a.Subject)
	if a.IsGeneral() {
		b.WriteString("General Application\n")
	} else {
		fmt.Fprintf(&b, "Job: %s\n", *a.JobTitle)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n", a.Message)

	submitted := a.SubmittedAt
	if submitted.IsZero() {
		submitted = time.Now()
	}
	fmt.Fprintf(&b, "Application received at: %s\n", submitted.Format(timeLayout))

	msg := &Message{
		From:    s.From,
		To:      s.StaffAddress,
		Subject: staffSubject,
		Body:    b.String(),
	}
	if !a.ResumePath.IsEmpty() {
		msg.Attachments = []Attachment{{Filename: a.ResumePath.Base(), Path: a.ResumePath}}
	}
	return msg
}

// AcknowledgmentMessage builds the confirmation sent to the applicant
func AcknowledgmentMessage(s Sender, a Applicant) *Message {
	company := s.CompanyName
	if company == "" {
		company = "Talencee"
	}

	body := fmt.Sprintf("Dear %s,\n\n"+
		"Thank you for your application!\n\n"+
		"We have received your application and our team will review it shortly.\n"+
		"If your qualifications match our requirements, we will contact you for the next steps.\n\n"+
		"Best regards,\n%s Team\n", a.Name, company)

	return &Message{
		From:    s.From,
		To:      a.Email.String(),
		Subject: "Application Received - " + company,
		Body:    body,
	}
}
