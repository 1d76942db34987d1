package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSpecialty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Specialty
		wantErr  bool
	}{
		{"exact match", "CARDIOLOGIA", SpecialtyCardiologia, false},
		{"lower case", "ortopedia", SpecialtyOrtopedia, false},
		{"mixed case", "DermaTologia", SpecialtyDermatologia, false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"unknown", "NEUROLOGIA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpecialty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSpecialty_UnmarshalJSON(t *testing.T) {
	var s Specialty
	assert.NoError(t, json.Unmarshal([]byte(`"ginecologia"`), &s))
	assert.Equal(t, SpecialtyGinecologia, s)

	assert.Error(t, json.Unmarshal([]byte(`"PEDIATRIA"`), &s))
	assert.Error(t, json.Unmarshal([]byte(`""`), &s))
	assert.Error(t, json.Unmarshal([]byte(`7`), &s))
}

func TestParseCancelReason(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CancelReason
		wantErr  bool
	}{
		{"exact match", "PACIENTE_DESISTIU", CancelReasonPatientWithdrew, false},
		{"lower case", "medico_cancelou", CancelReasonDoctorCancelled, false},
		{"other", "outros", CancelReasonOther, false},
		{"empty", "", "", true},
		{"unknown", "CHUVA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCancelReason(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConsultation_IsActive(t *testing.T) {
	c := Consultation{}
	assert.True(t, c.IsActive())

	reason := CancelReasonOther
	c.CancelReason = &reason
	assert.False(t, c.IsActive())
}
