package commands

import (
	"fmt"
	"slices"

	"github.com/justmike1/tanuki/config"
)

// AuthorizationError reports a user who is not in a project's allowed set.
type AuthorizationError struct {
	ProjectKey string
	UserID     string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user %s is not authorized for project %q", e.UserID, e.ProjectKey)
}

// authorize resolves a project key and checks that userID is in its allowed
// set. Returns UnknownProjectError for keys not in the registry.
func authorize(projects config.Projects, projectKey, userID string) (config.Project, error) {
	project, err := projects.Lookup(projectKey)
	if err != nil {
		return config.Project{}, err
	}
	if !slices.Contains(project.Users, userID) {
		return config.Project{}, &AuthorizationError{ProjectKey: projectKey, UserID: userID}
	}
	return project, nil
}
