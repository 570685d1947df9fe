package dto

import (
	"encoding/json"
	"testing"
)

func TestErrorResponseJSON(t *testing.T) {
	tests := []struct {
		name   string
		detail *ErrorDetail
		want   map[string]interface{}
		absent []string
	}{
		{
			name:   "plain",
			detail: NewErrorDetail(ErrorCodeUnauthorized, "Authentication required"),
			want:   map[string]interface{}{"code": "AUTH_008", "message": "Authentication required", "severity": "ERROR"},
			absent: []string{"field", "details", "debugInfo"},
		},
		{
			name: "field with details",
			detail: NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").
				WithField("email").
				WithDetails(map[string]string{"email": "Email is required"}),
			want:   map[string]interface{}{"code": "VAL_001", "field": "email", "severity": "ERROR"},
			absent: []string{"debugInfo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(NewErrorResponse(tt.detail))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var body struct {
				Success bool                   `json:"success"`
				Error   map[string]interface{} `json:"error"`
			}
			if err := json.Unmarshal(raw, &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Success {
				t.Error("success should be false")
			}
			for k, v := range tt.want {
				if body.Error[k] != v {
					t.Errorf("error.%s = %v, want %v", k, body.Error[k], v)
				}
			}
			for _, k := range tt.absent {
				if _, ok := body.Error[k]; ok {
					t.Errorf("error.%s should be omitted", k)
				}
			}
		})
	}
}
