package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CancelReason is the closed set of reasons a consultation may be cancelled for.
type CancelReason string

const (
	CancelReasonPatientWithdrew CancelReason = "PACIENTE_DESISTIU"
	CancelReasonDoctorCancelled CancelReason = "MEDICO_CANCELOU"
	CancelReasonOther           CancelReason = "OUTROS"
)

var cancelReasons = []CancelReason{
	CancelReasonPatientWithdrew,
	CancelReasonDoctorCancelled,
	CancelReasonOther,
}

// ParseCancelReason resolves a case-insensitive name to a CancelReason.
func ParseCancelReason(value string) (CancelReason, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("cancellation reason must not be empty")
	}
	for _, r := range cancelReasons {
		if strings.EqualFold(string(r), value) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid cancellation reason: %s", value)
}

func (r *CancelReason) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCancelReason(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
