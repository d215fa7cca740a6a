package config

import "testing"

// TestDefaultConfigValid tests that the defaults pass validation.
func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

// TestValidate tests field-level validation.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "bad output format",
			mutate:  func(c *Config) { c.Output.Format = "html" },
			wantErr: true,
		},
		{
			name:    "bad shell",
			mutate:  func(c *Config) { c.Submitter.Shell = "fish" },
			wantErr: true,
		},
		{
			name:    "empty results subdir",
			mutate:  func(c *Config) { c.Project.ResultsSubdir = "" },
			wantErr: true,
		},
		{
			name:    "empty submission subdir",
			mutate:  func(c *Config) { c.Project.SubmissionSubdir = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
