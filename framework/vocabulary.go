package framework

// Arg describes one positional argument of a command for display purposes.
type Arg struct {
	Name     string
	Optional bool
}

// CommandDesc is the help entry of a shell command.
type CommandDesc struct {
	Names []string
	Args  []Arg
	Short string
}

// Vocabulary lists every recognized command in help order.
// It feeds the help banner and input suggestions only, Parse does not consult it.
var Vocabulary = []CommandDesc{
	{Names: []string{"help", "?"}, Short: "print this menu"},
	{Names: []string{"exit", "x"}, Short: "exit the application"},
	{Names: []string{"flush"}, Short: "flush the database entries"},
	{Names: []string{"info"}, Short: "prints information about the running instance"},
	{
		Names: []string{"publish"},
		Args:  []Arg{{Name: "user"}, {Name: "value"}},
		Short: "publish key material (value) for user",
	},
	{
		Names: []string{"lookup"},
		Args:  []Arg{{Name: "user"}},
		Short: "lookup a proof for user",
	},
	{
		Names: []string{"history"},
		Args:  []Arg{{Name: "user"}},
		Short: "lookup key history for user",
	},
	{
		Names: []string{"audit"},
		Args:  []Arg{{Name: "start"}, {Name: "end"}},
		Short: "retrieve audit proof between start and end epochs",
	},
	{
		Names: []string{"root", "root_hash"},
		Args:  []Arg{{Name: "epoch", Optional: true}},
		Short: "retrieve the root hash at given epoch (default = latest epoch)",
	},
}
