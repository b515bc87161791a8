package cmd

import "testing"

func TestValidateSource(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		saved   string
		wantErr bool
	}{
		{"input only", "job.json", "", false},
		{"saved only", "", "backend-chennai", false},
		{"neither", "", "", true},
		{"both", "job.json", "backend-chennai", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateSource(tc.input, tc.saved)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
