package models

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		job     JobRequirement
		wantErr bool
	}{
		{
			name: "valid",
			job:  JobRequirement{Role: "Backend Engineer", RequiredSkills: []string{"Go"}},
		},
		{
			name: "skills without role",
			job:  JobRequirement{RequiredSkills: []string{"Go"}},
		},
		{
			name: "role without skills",
			job:  JobRequirement{Role: "SRE"},
		},
		{
			name:    "empty",
			job:     JobRequirement{},
			wantErr: true,
		},
		{
			name:    "negative experience",
			job:     JobRequirement{Role: "SRE", MinExperienceYears: -1},
			wantErr: true,
		},
		{
			name:    "inverted experience range",
			job:     JobRequirement{Role: "SRE", MinExperienceYears: 5, MaxExperienceYears: 2},
			wantErr: true,
		},
		{
			name:    "unknown seniority",
			job:     JobRequirement{Role: "SRE", Seniority: "wizard"},
			wantErr: true,
		},
		{
			name: "seniority case insensitive",
			job:  JobRequirement{Role: "SRE", Seniority: "Senior"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.job.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWithLocation(t *testing.T) {
	criteria := SearchCriteria{
		QueryString:    `language:go type:user location:"Austin"`,
		LocationFilter: `location:"Austin"`,
	}

	got := criteria.WithLocation(`location:"Texas"`)
	if got.QueryString != `language:go type:user location:"Texas"` {
		t.Errorf("QueryString = %q", got.QueryString)
	}
	if got.LocationFilter != `location:"Texas"` {
		t.Errorf("LocationFilter = %q", got.LocationFilter)
	}
}

func TestWithLocation_AddsWhenAbsent(t *testing.T) {
	criteria := SearchCriteria{QueryString: "language:go type:user"}

	got := criteria.WithLocation(`location:"Texas"`)
	if got.QueryString != `language:go type:user location:"Texas"` {
		t.Errorf("QueryString = %q", got.QueryString)
	}
}

func TestPrimaryLocation(t *testing.T) {
	job := JobRequirement{LocationPreferences: []string{" Chennai ", "Bengaluru"}}
	if got := job.PrimaryLocation(); got != "Chennai" {
		t.Errorf("PrimaryLocation = %q", got)
	}

	empty := JobRequirement{}
	if got := empty.PrimaryLocation(); got != "" {
		t.Errorf("PrimaryLocation = %q, want empty", got)
	}
}
