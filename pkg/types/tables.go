package types

// Standard table names for Store.GetTable.
const (
	ProjectsTable    = "projects"
	SubmissionsTable = "submissions"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ProjectsTable,
	SubmissionsTable,
}
