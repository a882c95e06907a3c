package handlers

import (
	"github.com/nfrund/safeonboard/internal/wizard"
)

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AttachmentResponse describes a stored file without its bytes.
type AttachmentResponse struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	MIMEType   string `json:"mimeType,omitempty"`
	HasPreview bool   `json:"hasPreview"`
}

// StateResponse is the JSON view of a wizard.
type StateResponse struct {
	WizardID       string                         `json:"wizardId"`
	Step           int                            `json:"step"`
	TotalSteps     int                            `json:"totalSteps"`
	StepLabel      string                         `json:"stepLabel"`
	Progress       int                            `json:"progress"`
	Values         map[string]string              `json:"values"`
	Selections     map[string][]string            `json:"selections"`
	Attachments    map[string]*AttachmentResponse `json:"attachments"`
	Errors         map[string]string              `json:"errors"`
	PreviewPending bool                           `json:"previewPending"`
}

// NewStateResponse builds the JSON view of w.
func NewStateResponse(w *wizard.Wizard) *StateResponse {
	s := w.State()
	catalog := w.Catalog()
	resp := &StateResponse{
		WizardID:       w.ID(),
		Step:           s.Step,
		TotalSteps:     catalog.Len(),
		Progress:       catalog.Progress(s.Step),
		Values:         map[string]string{},
		Selections:     map[string][]string{},
		Attachments:    map[string]*AttachmentResponse{},
		Errors:         map[string]string{},
		PreviewPending: w.PreviewPending(),
	}
	if def, ok := catalog.Step(s.Step); ok {
		resp.StepLabel = def.Label
	}

	for _, def := range catalog.Steps() {
		for _, spec := range def.Fields {
			name := string(spec.Name)
			switch spec.Kind() {
			case wizard.KindSet:
				resp.Selections[name] = s.Data.Set(spec.Name).Values()
			case wizard.KindAttachment:
				if att := s.Data.Attachment(spec.Name); att != nil {
					resp.Attachments[name] = &AttachmentResponse{
						Name:       att.Name,
						Size:       att.Size,
						MIMEType:   att.MIMEType,
						HasPreview: att.Preview != "",
					}
				} else {
					resp.Attachments[name] = nil
				}
			default:
				resp.Values[name] = s.Data.String(spec.Name)
			}
		}
	}
	for f, msg := range s.Errors {
		resp.Errors[string(f)] = msg
	}
	return resp
}
