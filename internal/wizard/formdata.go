package wizard

import (
	"fmt"

	"github.com/nfrund/safeonboard/internal/domain"
)

// Field names a single slot in the onboarding form. The string value is the
// wire name used by HTML forms, JSON payloads and the step catalog.
type Field string

const (
	FieldTitle             Field = "title"
	FieldFirstName         Field = "firstName"
	FieldLastName          Field = "lastName"
	FieldGender            Field = "gender"
	FieldIDPassportNumber  Field = "idPassportNumber"
	FieldEducationRank     Field = "educationRank"
	FieldOrganizationName  Field = "organizationName"
	FieldYearsOfExperience Field = "yearsOfExperience"
	FieldClientCapacity    Field = "clientCapacity"
	FieldHoursOfOperation  Field = "hoursOfOperation"
	FieldCountry           Field = "country"
	FieldCounty            Field = "county"
	FieldTown              Field = "town"
	FieldServiceType       Field = "serviceType"
	FieldClientele         Field = "clientele"
	FieldProfilePicture    Field = "profilePicture"
	FieldCredentials       Field = "credentials"
)

// Kind describes the shape of the value a field holds.
type Kind int

const (
	KindString Kind = iota
	KindSet
	KindAttachment
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSet:
		return "set"
	case KindAttachment:
		return "attachment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FileAttachment is a captured file selection. Ref points at the raw bytes
// in the attachment store; Preview holds a data URL once decoded.
type FileAttachment struct {
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType,omitempty"`
	Preview  string `json:"preview,omitempty"`
}

func (a *FileAttachment) clone() *FileAttachment {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// FormData is the aggregated record of every wizard field. It is a value:
// With returns an updated copy and never touches the receiver.
type FormData struct {
	Title             string
	FirstName         string
	LastName          string
	Gender            string
	IDPassportNumber  string
	EducationRank     string
	OrganizationName  string
	YearsOfExperience string
	ClientCapacity    string
	HoursOfOperation  string
	Country           string
	County            string
	Town              string
	ServiceType       Selection
	Clientele         Selection
	ProfilePicture    *FileAttachment
	Credentials       *FileAttachment
}

type accessor struct {
	kind Kind
	str  func(*FormData) *string
	set  func(*FormData) *Selection
	file func(*FormData) **FileAttachment
}

func stringField(f func(*FormData) *string) accessor {
	return accessor{kind: KindString, str: f}
}

func setField(f func(*FormData) *Selection) accessor {
	return accessor{kind: KindSet, set: f}
}

func fileField(f func(*FormData) **FileAttachment) accessor {
	return accessor{kind: KindAttachment, file: f}
}

var fields = map[Field]accessor{
	FieldTitle:             stringField(func(d *FormData) *string { return &d.Title }),
	FieldFirstName:         stringField(func(d *FormData) *string { return &d.FirstName }),
	FieldLastName:          stringField(func(d *FormData) *string { return &d.LastName }),
	FieldGender:            stringField(func(d *FormData) *string { return &d.Gender }),
	FieldIDPassportNumber:  stringField(func(d *FormData) *string { return &d.IDPassportNumber }),
	FieldEducationRank:     stringField(func(d *FormData) *string { return &d.EducationRank }),
	FieldOrganizationName:  stringField(func(d *FormData) *string { return &d.OrganizationName }),
	FieldYearsOfExperience: stringField(func(d *FormData) *string { return &d.YearsOfExperience }),
	FieldClientCapacity:    stringField(func(d *FormData) *string { return &d.ClientCapacity }),
	FieldHoursOfOperation:  stringField(func(d *FormData) *string { return &d.HoursOfOperation }),
	FieldCountry:           stringField(func(d *FormData) *string { return &d.Country }),
	FieldCounty:            stringField(func(d *FormData) *string { return &d.County }),
	FieldTown:              stringField(func(d *FormData) *string { return &d.Town }),
	FieldServiceType:       setField(func(d *FormData) *Selection { return &d.ServiceType }),
	FieldClientele:         setField(func(d *FormData) *Selection { return &d.Clientele }),
	FieldProfilePicture:    fileField(func(d *FormData) **FileAttachment { return &d.ProfilePicture }),
	FieldCredentials:       fileField(func(d *FormData) **FileAttachment { return &d.Credentials }),
}

// Fields returns every known field name.
func Fields() []Field {
	out := make([]Field, 0, len(fields))
	for f := range fields {
		out = append(out, f)
	}
	return out
}

// KindOf reports the value kind of a field.
func KindOf(f Field) (Kind, error) {
	acc, ok := fields[f]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}
	return acc.kind, nil
}

// With returns a copy of d with exactly one field replaced. String fields
// take a string, set fields a []string or Selection, attachment fields a
// *FileAttachment (nil clears the slot).
func (d FormData) With(f Field, value any) (FormData, error) {
	acc, ok := fields[f]
	if !ok {
		return d, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}

	switch acc.kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return d, fmt.Errorf("%w: %s expects a string, got %T", domain.ErrFieldType, f, value)
		}
		*acc.str(&d) = s
	case KindSet:
		switch v := value.(type) {
		case []string:
			*acc.set(&d) = NewSelection(v...)
		case Selection:
			*acc.set(&d) = v
		default:
			return d, fmt.Errorf("%w: %s expects a list of values, got %T", domain.ErrFieldType, f, value)
		}
	case KindAttachment:
		switch v := value.(type) {
		case *FileAttachment:
			*acc.file(&d) = v.clone()
		case nil:
			*acc.file(&d) = nil
		default:
			return d, fmt.Errorf("%w: %s expects an attachment, got %T", domain.ErrFieldType, f, value)
		}
	}
	return d, nil
}

// Get returns the current value of a field: a string, a []string copy of a
// set, or a copy of an attachment (nil when empty).
func (d FormData) Get(f Field) (any, error) {
	acc, ok := fields[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownField, f)
	}
	switch acc.kind {
	case KindSet:
		return acc.set(&d).Values(), nil
	case KindAttachment:
		return (*acc.file(&d)).clone(), nil
	default:
		return *acc.str(&d), nil
	}
}

// String returns the value of a string field, or "" for other kinds.
func (d FormData) String(f Field) string {
	acc, ok := fields[f]
	if !ok || acc.kind != KindString {
		return ""
	}
	return *acc.str(&d)
}

// Set returns the selection held by a set field.
func (d FormData) Set(f Field) Selection {
	acc, ok := fields[f]
	if !ok || acc.kind != KindSet {
		return Selection{}
	}
	return *acc.set(&d)
}

// Attachment returns a copy of the attachment held by f, or nil.
func (d FormData) Attachment(f Field) *FileAttachment {
	acc, ok := fields[f]
	if !ok || acc.kind != KindAttachment {
		return nil
	}
	return (*acc.file(&d)).clone()
}

// Clone returns a copy of d whose attachments are not shared with d.
// Selections are immutable and need no copying.
func (d FormData) Clone() FormData {
	d.ProfilePicture = d.ProfilePicture.clone()
	d.Credentials = d.Credentials.clone()
	return d
}
