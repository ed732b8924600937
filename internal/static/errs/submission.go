package errs

import (
	"errors"
	"fmt"
)

var (
	// NotConnected means the user has no linked Salesforce org, or the
	// stored credential was marked dead. The user must (re)connect.
	NotConnected = errors.New("no connected Salesforce org")

	// RefreshFailed means the platform rejected the stored refresh
	// token. The credential is marked dead; terminal for the session.
	RefreshFailed = errors.New("failed to refresh Salesforce access token")

	MissingArtifactName = errors.New("could not find a class or trigger declaration in the source")
	NameCollision       = errors.New("solution and test class must not share the same name")

	// TestRunTimeout means the asynchronous test run did not reach a
	// terminal state within the polling budget.
	TestRunTimeout = errors.New("test run timed out")

	ProblemNotFound = errors.New("problem not found")
	UserNotFound    = errors.New("user not found")
)

// RemoteError carries the message extracted from a non-2xx platform
// response.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("salesforce: %s (status %d)", e.Message, e.StatusCode)
}
