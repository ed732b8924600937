package domain

// Difficulty is one of exactly three ordered levels, each mapping to a
// fixed point value.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

var difficultyPoints = map[Difficulty]int{
	DifficultyEasy:   10,
	DifficultyMedium: 25,
	DifficultyHard:   50,
}

// Points returns the point value for the difficulty, or 0 for an
// unknown level.
func (d Difficulty) Points() int {
	return difficultyPoints[d]
}

func (d Difficulty) Valid() bool {
	_, ok := difficultyPoints[d]
	return ok
}

// ProblemKind determines which grading path a submission takes.
type ProblemKind string

const (
	ProblemKindClass   ProblemKind = "class"
	ProblemKindTrigger ProblemKind = "trigger"
	ProblemKindSOQL    ProblemKind = "soql"
)

type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// Problem is a coding challenge definition. Read-only from the
// perspective of the submission workflow.
type Problem struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Difficulty  Difficulty  `db:"difficulty"`
	Kind        ProblemKind `db:"kind"`
	StarterCode string      `db:"starter_code"`
	TestCode    string      `db:"test_code"`
	// TriggerObject is the sObject a trigger problem binds to; empty for
	// class and soql problems.
	TriggerObject string      `db:"trigger_object"`
	Examples      ExampleList `db:"examples"`
	Hints         HintList    `db:"hints"`
	ExpectedRows  RowList     `db:"expected_rows"`
}

type ExampleList []Example

type HintList []string

// RowList is the expected result set of a SOQL problem, one map per
// record keyed by field name.
type RowList []map[string]interface{}

type ProblemTable struct {
	ID            string
	Title         string
	Description   string
	Difficulty    string
	Kind          string
	StarterCode   string
	TestCode      string
	TriggerObject string
	Examples      string
	Hints         string
	ExpectedRows  string
}

func GetProblemTable() ProblemTable {
	return ProblemTable{
		ID:            "id",
		Title:         "title",
		Description:   "description",
		Difficulty:    "difficulty",
		Kind:          "kind",
		StarterCode:   "starter_code",
		TestCode:      "test_code",
		TriggerObject: "trigger_object",
		Examples:      "examples",
		Hints:         "hints",
		ExpectedRows:  "expected_rows",
	}
}

func (ProblemTable) GetTableName() string {
	return "problems"
}
