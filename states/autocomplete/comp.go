package autocomplete

type cmdCompType int

const (
	cmdCompAll cmdCompType = iota
	cmdCompCommand
)

type inputResult struct {
	parts []cComp
}

type cComp struct {
	// raw is the complete value before component parsing
	raw string
	// cTag is the command name or argument value
	cTag string
	// cType marks the comp is command or wildcard
	cType cmdCompType
}
