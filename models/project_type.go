package models

import (
	"encoding/json"
	"fmt"
)

// ProjectType is the primary service an inquiry is about. The set is closed:
// values only come from the constants below or from ParseProjectType.
type ProjectType string

const (
	ProjectTypeBranding      ProjectType = "Branding"
	ProjectTypeLogoDesign    ProjectType = "Logo Design"
	ProjectTypeMenuDesign    ProjectType = "Menu Design"
	ProjectTypeBrochureFlyer ProjectType = "Brochure / Flyer"
	ProjectTypeSeasonal      ProjectType = "Seasonal / Festive"
	ProjectTypeWebsite       ProjectType = "Website / Digital"
	ProjectTypeOther         ProjectType = "Other"
)

var projectTypes = []ProjectType{
	ProjectTypeBranding,
	ProjectTypeLogoDesign,
	ProjectTypeMenuDesign,
	ProjectTypeBrochureFlyer,
	ProjectTypeSeasonal,
	ProjectTypeWebsite,
	ProjectTypeOther,
}

// ProjectTypes returns the accepted values in display order.
func ProjectTypes() []ProjectType {
	out := make([]ProjectType, len(projectTypes))
	copy(out, projectTypes)
	return out
}

// ParseProjectType matches s exactly (case-sensitive) against the known values.
func ParseProjectType(s string) (ProjectType, bool) {
	for _, pt := range projectTypes {
		if string(pt) == s {
			return pt, true
		}
	}
	return "", false
}

func (p ProjectType) String() string {
	return string(p)
}

func (p ProjectType) Valid() bool {
	_, ok := ParseProjectType(string(p))
	return ok
}

func (p *ProjectType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseProjectType(s)
	if !ok {
		return fmt.Errorf("unknown project type %q", s)
	}
	*p = parsed
	return nil
}
