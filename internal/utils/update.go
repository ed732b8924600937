package querybuilder

// UpdateData maps column names to their new values for UPDATE builds.
type UpdateData map[string]interface{}
