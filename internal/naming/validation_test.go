package naming

import (
	"strings"
	"testing"
)

func TestValidateEnvironmentName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: "dev"},
		{name: "valid with digits", input: "dev2"},
		{name: "empty", input: "", wantErr: "must not be empty"},
		{name: "too long", input: "environment-name-way-too-long", wantErr: "exceeds"},
		{name: "uppercase", input: "Dev", wantErr: "invalid environment name"},
		{name: "underscore", input: "dev_1", wantErr: "invalid environment name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEnvironmentName(tt.input)
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("error = %v, want nil", err)
			case tt.wantErr != "" && err == nil:
				t.Fatalf("error = nil, want %q", tt.wantErr)
			case tt.wantErr != "" && !strings.Contains(err.Error(), tt.wantErr):
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateServiceName(t *testing.T) {
	if err := ValidateServiceName("reader"); err != nil {
		t.Errorf("ValidateServiceName(reader) = %v", err)
	}
	if err := ValidateServiceName("Reader"); err == nil {
		t.Error("ValidateServiceName(Reader) should fail")
	}
}

func TestValidateBucketName(t *testing.T) {
	if err := ValidateBucketName("search-index"); err != nil {
		t.Errorf("ValidateBucketName(search-index) = %v", err)
	}
	if err := ValidateBucketName(strings.Repeat("a", 41)); err == nil {
		t.Error("over-long bucket name should fail")
	}
}
