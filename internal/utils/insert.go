package querybuilder

// InsertRows collects the value tuples of a multi-row INSERT, one inner
// slice per row.
type InsertRows [][]interface{}
