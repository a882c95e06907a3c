package onboarding

import (
	"time"

	"github.com/nfrund/safeonboard/internal/pubsub"
	"github.com/nfrund/safeonboard/internal/wizard"
)

// ProfileCompleted is published once a wizard's final step validates. It
// carries the collected profile without the uploaded bytes; Ref values
// point into the attachment store.
type ProfileCompleted struct {
	WizardID          string                 `json:"wizard_id"`
	Title             string                 `json:"title"`
	FirstName         string                 `json:"first_name"`
	LastName          string                 `json:"last_name"`
	Gender            string                 `json:"gender"`
	IDPassportNumber  string                 `json:"id_passport_number"`
	EducationRank     string                 `json:"education_rank"`
	OrganizationName  string                 `json:"organization_name"`
	YearsOfExperience string                 `json:"years_of_experience"`
	ClientCapacity    string                 `json:"client_capacity"`
	HoursOfOperation  string                 `json:"hours_of_operation"`
	Country           string                 `json:"country"`
	County            string                 `json:"county"`
	Town              string                 `json:"town"`
	ServiceTypes      []string               `json:"service_types"`
	Clientele         []string               `json:"clientele"`
	ProfilePicture    *wizard.FileAttachment `json:"profile_picture,omitempty"`
	Credentials       *wizard.FileAttachment `json:"credentials"`
	CompletedAt       time.Time              `json:"completed_at"`
}

// ProfileCompletedEvent is the topic a backend integration subscribes to.
var ProfileCompletedEvent = pubsub.NewEvent[ProfileCompleted](
	"onboarding.profile.completed",
	"A provider finished every onboarding step",
)

// NewProfileCompleted flattens a submission into the event payload.
func NewProfileCompleted(sub wizard.Submission) ProfileCompleted {
	d := sub.Data
	p := ProfileCompleted{
		WizardID:          sub.WizardID,
		Title:             d.Title,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		Gender:            d.Gender,
		IDPassportNumber:  d.IDPassportNumber,
		EducationRank:     d.EducationRank,
		OrganizationName:  d.OrganizationName,
		YearsOfExperience: d.YearsOfExperience,
		ClientCapacity:    d.ClientCapacity,
		HoursOfOperation:  d.HoursOfOperation,
		Country:           d.Country,
		County:            d.County,
		Town:              d.Town,
		ServiceTypes:      d.ServiceType.Values(),
		Clientele:         d.Clientele.Values(),
		ProfilePicture:    d.Attachment(wizard.FieldProfilePicture),
		Credentials:       d.Attachment(wizard.FieldCredentials),
		CompletedAt:       sub.CompletedAt,
	}
	// Previews are display-only data URLs and would bloat the event.
	if p.ProfilePicture != nil {
		p.ProfilePicture.Preview = ""
	}
	return p
}
