package templates

import (
	"fmt"
	"strings"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

var volunteerStatusHeadlines = map[string]string{
	models.VolunteerStatusApproved: "Your volunteer application has been approved!",
	models.VolunteerStatusRejected: "Your volunteer application status has been updated",
	models.VolunteerStatusPending:  "Your volunteer application is under review",
}

var volunteerStatusDescriptions = map[string]string{
	models.VolunteerStatusApproved: "Congratulations! Your application has been approved. We look forward to your participation in the LASUMBA Games 2026.",
	models.VolunteerStatusRejected: "Unfortunately, your application could not be approved at this time. Thank you for your interest.",
	models.VolunteerStatusPending:  "Your application is being reviewed. We will update you soon.",
}

func volunteerStatusColor(status string) string {
	switch status {
	case models.VolunteerStatusApproved:
		return "#28a745"
	case models.VolunteerStatusRejected:
		return "#dc3545"
	default:
		return "#ffc107"
	}
}

func volunteerDetails(v *models.Volunteer) []detail {
	return []detail{
		{"Name", v.FullName()},
		{"Email", v.Email},
		{"Phone", v.Phone},
		{"Program", v.Program},
		{"Interested Activities", strings.Join(v.InterestedActivities, ", ")},
		{"Experience Level", v.Experience},
	}
}

// VolunteerApplicationReceived acknowledges a new application
func VolunteerApplicationReceived(v *models.Volunteer) (Message, error) {
	return render(
		fmt.Sprintf("LASUMBA Games - Volunteer Application Received | %s", v.ID),
		page{
			HeaderColor: colorVolunteer,
			Title:       gamesTitle,
			Subtitle:    "Volunteer Application Received",
			Greeting:    fmt.Sprintf("Dear %s,", v.FullName()),
			Intro:       []string{"Thank you for submitting your volunteer application for the LASUMBA Games 2026!"},
			Details: []detail{
				{"Program", v.Program},
				{"Interested Activities", strings.Join(v.InterestedActivities, ", ")},
				{"Experience Level", v.Experience},
			},
			Outro: []string{
				fmt.Sprintf("We will review your application and get back to you shortly. Your status can be checked using the application ID: %s", v.ID),
				"Thank you for your interest in supporting the LASUMBA Games!",
			},
		},
	)
}

// AdminVolunteerApplication alerts staff about a new application
func AdminVolunteerApplication(v *models.Volunteer) (Message, error) {
	details := volunteerDetails(v)
	if v.AdditionalInfo != "" {
		details = append(details, detail{"Additional Info", v.AdditionalInfo})
	}
	return render(
		fmt.Sprintf("LASUMBA Games - New Volunteer Application from %s", v.FullName()),
		page{
			HeaderColor: colorVolunteer,
			Title:       gamesTitle,
			Subtitle:    "New Volunteer Application",
			Intro:       []string{"A new volunteer application has been submitted."},
			Details:     details,
			Outro:       []string{fmt.Sprintf("Application ID: %s", v.ID)},
		},
	)
}

// VolunteerStatusChanged tells the applicant about their new status
func VolunteerStatusChanged(v *models.Volunteer) (Message, error) {
	headline, ok := volunteerStatusHeadlines[v.Status]
	if !ok {
		headline = "Your volunteer application status has been updated"
	}
	status := strings.ToUpper(v.Status)
	return render(
		fmt.Sprintf("LASUMBA Games 2026 - Application Status Update: %s", status),
		page{
			HeaderColor: volunteerStatusColor(v.Status),
			Title:       gamesTitle,
			Subtitle:    headline,
			Greeting:    fmt.Sprintf("Dear %s,", v.FullName()),
			Badge:       status,
			Intro:       []string{volunteerStatusDescriptions[v.Status]},
			Outro:       []string{"Thank you for your interest in supporting the LASUMBA Games 2026."},
		},
	)
}

// AdminVolunteerStatusChanged records a status change for staff
func AdminVolunteerStatusChanged(v *models.Volunteer) (Message, error) {
	status := strings.ToUpper(v.Status)
	return render(
		fmt.Sprintf("LASUMBA Games 2026 - Volunteer Status Updated: %s (%s)", v.FullName(), status),
		page{
			HeaderColor: volunteerStatusColor(v.Status),
			Title:       gamesTitle,
			Subtitle:    "Volunteer Status Updated",
			Intro:       []string{"A volunteer application status has been updated."},
			Details: []detail{
				{"Name", v.FullName()},
				{"Email", v.Email},
				{"New Status", status},
			},
			Outro: []string{fmt.Sprintf("Application ID: %s", v.ID)},
		},
	)
}

// VolunteerNoteAdded forwards an admin note to the applicant
func VolunteerNoteAdded(v *models.Volunteer, note string) (Message, error) {
	return render(
		"LASUMBA Games 2026 - New Message on Your Application",
		page{
			HeaderColor: colorVolunteer,
			Title:       gamesTitle,
			Subtitle:    "New Message Regarding Your Application",
			Greeting:    fmt.Sprintf("Dear %s,", v.FullName()),
			Intro:       []string{"The LASUMBA Games team has left a message regarding your volunteer application:"},
			Quote:       note,
			Outro:       []string{"Please check your application status in the portal for more details."},
		},
	)
}

// AdminVolunteerNoteAdded copies a note to staff
func AdminVolunteerNoteAdded(v *models.Volunteer, note string) (Message, error) {
	return render(
		fmt.Sprintf("LASUMBA Games 2026 - Note Added to %s's Application", v.FullName()),
		page{
			HeaderColor: colorVolunteer,
			Title:       gamesTitle,
			Subtitle:    "Note Added to Volunteer Application",
			Intro:       []string{"A note has been added to a volunteer application."},
			Details: []detail{
				{"Name", v.FullName()},
				{"Email", v.Email},
				{"Status", strings.ToUpper(v.Status)},
			},
			QuoteLabel: "Note:",
			Quote:      note,
			Outro:      []string{fmt.Sprintf("Application ID: %s", v.ID)},
		},
	)
}
