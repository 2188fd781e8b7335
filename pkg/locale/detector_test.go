package locale

import (
	"testing"
)

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		wantCode string
		wantNil  bool
	}{
		{
			name:     "argentina mobile",
			phone:    "+5491143211234",
			wantCode: "AR",
		},
		{
			name:     "argentina mobile without plus",
			phone:    "5491143211234",
			wantCode: "AR",
		},
		{
			name:     "uruguay mobile",
			phone:    "+59899123456",
			wantCode: "UY",
		},
		{
			name:     "spain mobile",
			phone:    "+34612345678",
			wantCode: "ES",
		},
		{
			name:     "israel mobile",
			phone:    "+972541234567",
			wantCode: "IL",
		},
		{
			name:     "us number",
			phone:    "+12125551234",
			wantCode: "US",
		},
		{
			name:    "unknown country",
			phone:   "+442071234567",
			wantNil: true,
		},
		{
			name:    "empty phone",
			phone:   "",
			wantNil: true,
		},
		{
			name:    "not a phone at all",
			phone:   "not-a-phone",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCountryFromPhone(tt.phone)
			if tt.wantNil {
				if got != nil {
					t.Errorf("InferCountryFromPhone(%q) = %v, want nil", tt.phone, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("InferCountryFromPhone(%q) = nil, want country with code %q", tt.phone, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("InferCountryFromPhone(%q).Code = %q, want %q", tt.phone, got.Code, tt.wantCode)
			}
		})
	}
}

func TestInferTimezoneFromPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{
			name:  "argentina phone returns Buenos Aires",
			phone: "+5491143211234",
			want:  "America/Argentina/Buenos_Aires",
		},
		{
			name:  "uruguay phone returns Montevideo",
			phone: "+59899123456",
			want:  "America/Montevideo",
		},
		{
			name:  "spain phone returns Madrid",
			phone: "+34612345678",
			want:  "Europe/Madrid",
		},
		{
			name:  "unknown phone returns UTC",
			phone: "+442071234567",
			want:  "UTC",
		},
		{
			name:  "empty phone returns UTC",
			phone: "",
			want:  "UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferTimezoneFromPhone(tt.phone)
			if got != tt.want {
				t.Errorf("InferTimezoneFromPhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestDetectRegion(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{
			name:     "buenos aires",
			timezone: "America/Argentina/Buenos_Aires",
			want:     "AR",
		},
		{
			name:     "cordoba",
			timezone: "America/Argentina/Cordoba",
			want:     "AR",
		},
		{
			name:     "montevideo",
			timezone: "America/Montevideo",
			want:     "UY",
		},
		{
			name:     "madrid",
			timezone: "Europe/Madrid",
			want:     "ES",
		},
		{
			name:     "jerusalem",
			timezone: "Asia/Jerusalem",
			want:     "IL",
		},
		{
			name:     "new york",
			timezone: "America/New_York",
			want:     "US",
		},
		{
			name:     "unmapped zone falls back to AR",
			timezone: "Europe/London",
			want:     "AR",
		},
		{
			name:     "UTC falls back to AR",
			timezone: "UTC",
			want:     "AR",
		},
		{
			name:     "empty falls back to AR",
			timezone: "",
			want:     "AR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectRegion(tt.timezone)
			if got != tt.want {
				t.Errorf("DetectRegion(%q) = %q, want %q", tt.timezone, got, tt.want)
			}
		})
	}
}
