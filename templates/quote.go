package templates

import (
	"fmt"
	"strings"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

var quoteStatusMessages = map[string]string{
	models.QuoteStatusPending:  "Your T-shirt is being prepared",
	models.QuoteStatusReplied:  "We have a response to your T-shirt request",
	models.QuoteStatusApproved: "Your T-shirt request has been approved",
	models.QuoteStatusRejected: "Unfortunately, we cannot process this T-shirt quote at this time",
	models.QuoteStatusExpired:  "Your T-shirt request has expired",
}

var quoteStatusColors = map[string]string{
	models.QuoteStatusPending:  "#FF9800",
	models.QuoteStatusReplied:  "#2196F3",
	models.QuoteStatusApproved: "#4CAF50",
	models.QuoteStatusRejected: "#F44336",
	models.QuoteStatusExpired:  "#9E9E9E",
}

func quoteDetails(q *models.Quote) []detail {
	return []detail{
		{"Reference ID", q.ID.String()},
		{"Full Name", orNA(q.Name)},
		{"Email Address", orNA(q.Email)},
		{"Phone Number", orNA(q.Phone)},
		{"Department / Level", orNA(q.Company)},
		{"Design Type", orNA(q.DesignType)},
		{"Preferred Size", orNA(q.Service)},
	}
}

func statusColor(status string) string {
	if c, ok := quoteStatusColors[status]; ok {
		return c
	}
	return colorInfo
}

// QuoteConfirmation acknowledges a new request and lists payment instructions
func QuoteConfirmation(q *models.Quote) (Message, error) {
	return render(
		fmt.Sprintf("LASUMBA T-Shirt Request Confirmation & Payment Details - Reference ID: %s", q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "T-Shirt Request Received",
			Greeting:    fmt.Sprintf("Hello %s,", q.Name),
			Intro: []string{
				"Thank you for submitting your request for the LASUMBA T-Shirt. We are pleased to confirm that your request has been received.",
				"Below are the details of your submission for your reference:",
			},
			Details:    quoteDetails(q),
			QuoteLabel: "Request Details:",
			Quote:      orNA(q.Message),
			Outro: []string{
				"To proceed with your order, please make payment using the bank details shared by the committee.",
				"After making payment, kindly send proof of payment (receipt or transfer confirmation) via WhatsApp.",
				"Once payment is confirmed, your request status will be updated, and further details regarding T-shirt collection will be communicated to you.",
				"If you have any questions or require assistance, please do not hesitate to contact us.",
			},
			Signoff: commitSignoff,
			Footer:  copyrightNote,
		},
	)
}

// AdminQuoteCreated alerts the committee inbox about a new request
func AdminQuoteCreated(q *models.Quote) (Message, error) {
	return render(
		fmt.Sprintf("New LASUMBA T-Shirt Request Submitted - ID: %s", q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "New T-Shirt Request Received",
			Greeting:    "Dear Admin Committee,",
			Intro: []string{
				"A new LASUMBA T-Shirt request has been submitted and requires your review.",
				"Below are the details of the request:",
			},
			Details:    quoteDetails(q),
			QuoteLabel: "Request Notes:",
			Quote:      orNA(q.Message),
			Outro: []string{
				"Please review the submitted data for accuracy and completeness.",
				"Kindly log in to the admin panel to review, approve, and manage this request.",
			},
			Signoff: commitSignoff,
			Footer:  copyrightNote,
		},
	)
}

// QuoteStatusUpdate tells the applicant about the request's new status
func QuoteStatusUpdate(q *models.Quote) (Message, error) {
	msg, ok := quoteStatusMessages[q.Status]
	if !ok {
		msg = "Your T-shirt request status has been updated"
	}
	status := strings.ToUpper(q.Status)
	return render(
		fmt.Sprintf("T-shirt Status Update: %s - Reference ID: %s", status, q.ID),
		page{
			HeaderColor: statusColor(q.Status),
			Title:       "Quote Status Update",
			Greeting:    fmt.Sprintf("Hello %s,", q.Name),
			Intro:       []string{msg},
			Badge:       status,
			Details:     []detail{{"Quote Reference ID", q.ID.String()}},
			Quote:       q.Details,
			Outro:       []string{"Thank you for choosing LASUMBA Games!"},
			Signoff:     commitSignoff,
			Footer:      copyrightNote,
		},
	)
}

// AdminQuoteStatusChanged records a status transition for the committee
func AdminQuoteStatusChanged(q *models.Quote, oldStatus string) (Message, error) {
	return render(
		fmt.Sprintf("Quote Status Changed: %s → %s - ID: %s", strings.ToUpper(oldStatus), strings.ToUpper(q.Status), q.ID),
		page{
			HeaderColor: statusColor(q.Status),
			Title:       "Quote Status Changed",
			Greeting:    "Dear Admin Committee,",
			Intro:       []string{"A T-shirt request status has been updated."},
			Details: []detail{
				{"Reference ID", q.ID.String()},
				{"Customer", orNA(q.Name)},
				{"Email", orNA(q.Email)},
				{"Previous Status", strings.ToUpper(oldStatus)},
				{"New Status", strings.ToUpper(q.Status)},
			},
			QuoteLabel: "Details:",
			Quote:      q.Details,
			Signoff:    commitSignoff,
			Footer:     copyrightNote,
		},
	)
}

// QuoteReply forwards the latest staff reply to the applicant
func QuoteReply(q *models.Quote) (Message, error) {
	return render(
		fmt.Sprintf("New Reply to Your T-shirt - Reference ID: %s", q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "New Reply to Your Quote",
			Greeting:    fmt.Sprintf("Hello %s,", q.Name),
			Intro:       []string{"We have a response to your quote request!"},
			Details:     []detail{{"Quote Reference ID", q.ID.String()}},
			Quote:       q.ReplyMessage,
			Outro:       []string{"Please review the details above and let us know if you have any questions."},
			Signoff:     commitSignoff,
			Footer:      copyrightNote,
		},
	)
}

// AdminQuoteReply copies a staff reply to the committee inbox
func AdminQuoteReply(q *models.Quote, senderName, message string) (Message, error) {
	return render(
		fmt.Sprintf("Reply Sent on T-Shirt Request - ID: %s", q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "Reply Sent to Customer",
			Greeting:    "Dear Admin Committee,",
			Intro:       []string{fmt.Sprintf("%s replied to a T-shirt request.", orNA(senderName))},
			Details: []detail{
				{"Reference ID", q.ID.String()},
				{"Customer", orNA(q.Name)},
				{"Email", orNA(q.Email)},
			},
			QuoteLabel: "Reply:",
			Quote:      message,
			Signoff:    commitSignoff,
			Footer:     copyrightNote,
		},
	)
}

// QuoteAssigned tells the applicant which committee member handles the request
func QuoteAssigned(q *models.Quote, assignee *models.User) (Message, error) {
	return render(
		fmt.Sprintf("Your T-Shirt Request Has Been Assigned - Reference ID: %s", q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "Your Request Has Been Assigned",
			Greeting:    fmt.Sprintf("Hello %s,", q.Name),
			Intro:       []string{"Your T-shirt request has been assigned to a committee member for processing."},
			Details: []detail{
				{"Assigned To", assignee.DisplayName()},
				{"Quote Reference ID", q.ID.String()},
			},
			Outro: []string{
				"Your assigned committee member will review your request and contact you soon with further details.",
				"Thank you for your patience!",
			},
			Signoff: commitSignoff,
			Footer:  copyrightNote,
		},
	)
}

// AdminQuoteAssigned records an assignment for the committee
func AdminQuoteAssigned(q *models.Quote, assignee *models.User) (Message, error) {
	return render(
		fmt.Sprintf("T-Shirt Request Assigned to %s - ID: %s", assignee.DisplayName(), q.ID),
		page{
			HeaderColor: colorInfo,
			Title:       "Request Assigned",
			Greeting:    "Dear Admin Committee,",
			Intro:       []string{"A T-shirt request has been assigned."},
			Details: []detail{
				{"Reference ID", q.ID.String()},
				{"Customer", orNA(q.Name)},
				{"Assigned To", assignee.DisplayName()},
				{"Assignee Email", assignee.Email},
			},
			Signoff: commitSignoff,
			Footer:  copyrightNote,
		},
	)
}
