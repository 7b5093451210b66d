package slogs

// Structured logging keys.
const (
	Resource = "resource"
	Endpoint = "endpoint"
	RowCount = "rows"
	Page     = "page"
	Command  = "command"
	Path     = "path"
	Elapsed  = "elapsed"
)
