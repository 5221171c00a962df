package commands

import (
	"errors"
	"testing"

	"github.com/justmike1/tanuki/config"
)

func testProjects() config.Projects {
	return config.Projects{
		"backend": {ID: 7, Channel: "C-backend", Ref: "main", Users: []string{"U123", "U456"}},
	}
}

func TestAuthorizeMember(t *testing.T) {
	project, err := authorize(testProjects(), "backend", "U123")
	if err != nil {
		t.Fatalf("authorize failed for member: %v", err)
	}
	if project.ID != 7 {
		t.Fatalf("unexpected project: %+v", project)
	}
}

func TestAuthorizeNonMember(t *testing.T) {
	_, err := authorize(testProjects(), "backend", "U999")
	var authErr *AuthorizationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
	if authErr.ProjectKey != "backend" || authErr.UserID != "U999" {
		t.Fatalf("unexpected error fields: %+v", authErr)
	}
}

func TestAuthorizeUnknownProject(t *testing.T) {
	_, err := authorize(testProjects(), "frontend", "U123")
	var unknownErr *config.UnknownProjectError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownProjectError, got %v", err)
	}
}
