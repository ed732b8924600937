package domain

// ArtifactKind is a named unit of remotely-deployed Apex source.
type ArtifactKind string

const (
	ArtifactApexClass   ArtifactKind = "ApexClass"
	ArtifactApexTrigger ArtifactKind = "ApexTrigger"
)

// ArtifactRef points at an existing artifact on the platform.
type ArtifactRef struct {
	ID   string
	Kind ArtifactKind
	Name string
}

// Test result statuses reported by the platform. A record is terminal
// once it reaches one of these.
const (
	TestStatusCompleted = "Completed"
	TestStatusFailed    = "Failed"
	TestStatusAborted   = "Aborted"
)

// TestOutcomePass is the per-method outcome for a passing test.
const TestOutcomePass = "Pass"

// TestMethodResult is one test method's result from an asynchronous
// test run.
type TestMethodResult struct {
	MethodName string `json:"MethodName"`
	Status     string `json:"Status"`
	Outcome    string `json:"Outcome"`
	Message    string `json:"Message"`
	StackTrace string `json:"StackTrace"`
}

func (r TestMethodResult) Terminal() bool {
	switch r.Status {
	case TestStatusCompleted, TestStatusFailed, TestStatusAborted:
		return true
	}
	return false
}

// SubmissionOutcome is the transient result of one grading attempt.
// It is derived per attempt and never persisted as its own entity.
type SubmissionOutcome struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Details       string `json:"details,omitempty"`
	PointsAwarded int    `json:"points_awarded"`
}
