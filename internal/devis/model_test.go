package devis

import (
	"errors"
	"testing"
)

func validRequest() *SubmissionRequest {
	return &SubmissionRequest{
		Name:               "Jean Dupont",
		Email:              "jean@example.com",
		ProjectType:        "Site Vitrine Essentiel",
		ProjectDescription: "Je veux un site pour mon salon de coiffure avec prise de rendez-vous.",
	}
}

func TestValidate_Success(t *testing.T) {
	req := validRequest()
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TrimsFields(t *testing.T) {
	req := validRequest()
	req.Name = "  Jean Dupont  "
	req.Email = " jean@example.com "
	req.Phone = " 0612345678 "

	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Name != "Jean Dupont" {
		t.Errorf("expected trimmed name, got %q", req.Name)
	}
	if req.Phone != "0612345678" {
		t.Errorf("expected trimmed phone, got %q", req.Phone)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SubmissionRequest)
		wantErr error
	}{
		{"missing name", func(r *SubmissionRequest) { r.Name = "" }, ErrMissingName},
		{"whitespace name", func(r *SubmissionRequest) { r.Name = "   " }, ErrMissingName},
		{"missing email", func(r *SubmissionRequest) { r.Email = "" }, ErrMissingEmail},
		{"whitespace email", func(r *SubmissionRequest) { r.Email = "\t " }, ErrMissingEmail},
		{"missing project type", func(r *SubmissionRequest) { r.ProjectType = "" }, ErrMissingProjectType},
		{"missing description", func(r *SubmissionRequest) { r.ProjectDescription = "" }, ErrMissingDescription},
		{"whitespace description", func(r *SubmissionRequest) { r.ProjectDescription = "  \n " }, ErrMissingDescription},
		{"short description", func(r *SubmissionRequest) { r.ProjectDescription = "un site" }, ErrDescriptionTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !IsValidationError(err) {
				t.Fatalf("expected %v to classify as validation error", err)
			}
		})
	}
}

func TestIsValidationError_OtherErrors(t *testing.T) {
	if IsValidationError(ErrPersistFailed) {
		t.Error("persistence failure must not classify as validation error")
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("arbitrary error must not classify as validation error")
	}
	if IsValidationError(nil) {
		t.Error("nil must not classify as validation error")
	}
}
