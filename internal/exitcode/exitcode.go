package exitcode

const (
	Success                   = 0
	UsageError                = 1
	InputError                = 2
	InsufficientDocumentation = 3
	PartialSuccess            = 4
	ExportError               = 5
)
