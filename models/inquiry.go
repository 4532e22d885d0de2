package models

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/hospitality-studio-backend/errs"
)

// InquiryCollection is the default collection inquiries are stored in.
const InquiryCollection = "inquiry"

const (
	minNameLength    = 2
	minMessageLength = 10
)

// Inquiry is a contact-form submission that has passed validation.
type Inquiry struct {
	Name            string       `json:"name"`
	Email           string       `json:"email"`
	Phone           *string      `json:"phone"`
	ResortOrCompany *string      `json:"resort_or_company"`
	ProjectType     *ProjectType `json:"project_type"`
	Message         string       `json:"message"`
	BudgetRange     *string      `json:"budget_range"`
	Timeline        *string      `json:"timeline"`
}

// Field names as they appear on the wire and in storage.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPhone           = "phone"
	FieldResortOrCompany = "resort_or_company"
	FieldProjectType     = "project_type"
	FieldMessage         = "message"
	FieldBudgetRange     = "budget_range"
	FieldTimeline        = "timeline"
)

// InquiryFields lists every inquiry attribute in declaration order.
var InquiryFields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldResortOrCompany,
	FieldProjectType,
	FieldMessage,
	FieldBudgetRange,
	FieldTimeline,
}

var validate = validator.New()

// ValidateInquiry checks an untrusted submission and returns the canonical
// inquiry. On failure the error is an *errs.ValidationError listing every
// violated rule. Keys other than the inquiry fields are ignored and no value
// is trimmed or reformatted.
func ValidateInquiry(raw map[string]any) (Inquiry, error) {
	verr := &errs.ValidationError{}
	var inq Inquiry

	if name, ok := requiredString(raw, FieldName, verr); ok {
		if utf8.RuneCountInString(name) < minNameLength {
			verr.Add(FieldName, errs.RuleMinLength, "must be at least 2 characters")
		}
		inq.Name = name
	}

	if email, ok := requiredString(raw, FieldEmail, verr); ok {
		if !isEmail(email) {
			verr.Add(FieldEmail, errs.RuleEmail, "must be a valid email address")
		}
		inq.Email = email
	}

	inq.Phone = optionalString(raw, FieldPhone, verr)
	inq.ResortOrCompany = optionalString(raw, FieldResortOrCompany, verr)

	if s := optionalString(raw, FieldProjectType, verr); s != nil {
		pt, ok := ParseProjectType(*s)
		if ok {
			inq.ProjectType = &pt
		} else {
			verr.Add(FieldProjectType, errs.RuleOneOf, "must be one of: "+projectTypeList())
		}
	}

	if message, ok := requiredString(raw, FieldMessage, verr); ok {
		if utf8.RuneCountInString(message) < minMessageLength {
			verr.Add(FieldMessage, errs.RuleMinLength, "must be at least 10 characters")
		}
		inq.Message = message
	}

	inq.BudgetRange = optionalString(raw, FieldBudgetRange, verr)
	inq.Timeline = optionalString(raw, FieldTimeline, verr)

	if err := verr.OrNil(); err != nil {
		return Inquiry{}, err
	}
	return inq, nil
}

// Document renders the inquiry with all eight fields present; absent
// optional values are stored as null.
func (i Inquiry) Document() Document {
	var projectType *string
	if i.ProjectType != nil {
		s := i.ProjectType.String()
		projectType = &s
	}
	return Document{
		FieldName:            i.Name,
		FieldEmail:           i.Email,
		FieldPhone:           nullable(i.Phone),
		FieldResortOrCompany: nullable(i.ResortOrCompany),
		FieldProjectType:     nullable(projectType),
		FieldMessage:         i.Message,
		FieldBudgetRange:     nullable(i.BudgetRange),
		FieldTimeline:        nullable(i.Timeline),
	}
}

func requiredString(raw map[string]any, field string, verr *errs.ValidationError) (string, bool) {
	v, present := raw[field]
	if !present || v == nil {
		verr.Add(field, errs.RuleRequired, "field required")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		verr.Add(field, errs.RuleType, "must be a string")
		return "", false
	}
	return s, true
}

func optionalString(raw map[string]any, field string, verr *errs.ValidationError) *string {
	v, present := raw[field]
	if !present || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		verr.Add(field, errs.RuleType, "must be a string or null")
		return nil
	}
	return &s
}

// isEmail accepts local-part@domain where the domain has at least two
// non-empty dot-separated labels.
func isEmail(s string) bool {
	if validate.Var(s, "required,email") != nil {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	labels := strings.Split(s[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" {
			return false
		}
	}
	return true
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func projectTypeList() string {
	names := make([]string, len(projectTypes))
	for i, pt := range projectTypes {
		names[i] = string(pt)
	}
	return strings.Join(names, ", ")
}
