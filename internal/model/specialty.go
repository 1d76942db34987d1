package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Specialty is the closed set of medical practice areas a doctor belongs to.
type Specialty string

const (
	SpecialtyOrtopedia    Specialty = "ORTOPEDIA"
	SpecialtyCardiologia  Specialty = "CARDIOLOGIA"
	SpecialtyGinecologia  Specialty = "GINECOLOGIA"
	SpecialtyDermatologia Specialty = "DERMATOLOGIA"
)

var specialties = []Specialty{
	SpecialtyOrtopedia,
	SpecialtyCardiologia,
	SpecialtyGinecologia,
	SpecialtyDermatologia,
}

// ParseSpecialty resolves a case-insensitive name to a Specialty.
func ParseSpecialty(value string) (Specialty, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("specialty must not be empty")
	}
	for _, s := range specialties {
		if strings.EqualFold(string(s), value) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid specialty: %s", value)
}

// UnmarshalJSON routes all JSON input through ParseSpecialty so unrecognized
// values are rejected at the boundary.
func (s *Specialty) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSpecialty(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
