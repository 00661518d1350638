package framework

// Command is the parsed form of one shell input line.
// The set of implementations is closed: Exit, Help, Flush, Info,
// Directory, InvalidArgs and Unknown.
type Command interface {
	isCommand()
	// Kind returns the stable name of the variant, used for logging and the web API.
	Kind() string
}

// Exit asks the shell to terminate.
type Exit struct{}

// Help asks the shell to print the help banner.
type Help struct{}

// Flush asks the shell to drop all directory entries from the backing store.
type Flush struct{}

// Info asks the shell to print runtime information.
type Info struct{}

// Directory wraps a validated directory sub-command.
type Directory struct {
	Cmd DirectoryCommand
}

// InvalidArgs is returned when the head names a known command
// but its arguments fail validation.
type InvalidArgs struct {
	Message string
}

// Unknown is returned when the head matches no known command.
// Text is the normalized input line.
type Unknown struct {
	Text string
}

func (Exit) isCommand()        {}
func (Help) isCommand()        {}
func (Flush) isCommand()       {}
func (Info) isCommand()        {}
func (Directory) isCommand()   {}
func (InvalidArgs) isCommand() {}
func (Unknown) isCommand()     {}

func (Exit) Kind() string        { return "exit" }
func (Help) Kind() string        { return "help" }
func (Flush) Kind() string       { return "flush" }
func (Info) Kind() string        { return "info" }
func (d Directory) Kind() string { return d.Cmd.Kind() }
func (InvalidArgs) Kind() string { return "invalid_args" }
func (Unknown) Kind() string     { return "unknown" }

// DirectoryCommand is a sub-command executed against the key directory.
// The set of implementations is closed: Publish, Lookup, KeyHistory, Audit and RootHash.
type DirectoryCommand interface {
	isDirectoryCommand()
	Kind() string
}

// Publish stores value as the next version of the user's key material.
type Publish struct {
	User  string
	Value string
}

// Lookup fetches the latest key material of a user together with its proof data.
type Lookup struct {
	User string
}

// KeyHistory fetches every published version of a user's key material.
type KeyHistory struct {
	User string
}

// Audit requests the append-only proof between two epochs.
// Start may be greater than End, ordering is checked by the directory.
type Audit struct {
	Start uint64
	End   uint64
}

// RootHash requests the root hash at Epoch, or at the latest epoch when Epoch is nil.
type RootHash struct {
	Epoch *uint64
}

func (Publish) isDirectoryCommand()    {}
func (Lookup) isDirectoryCommand()     {}
func (KeyHistory) isDirectoryCommand() {}
func (Audit) isDirectoryCommand()      {}
func (RootHash) isDirectoryCommand()   {}

func (Publish) Kind() string    { return "publish" }
func (Lookup) Kind() string     { return "lookup" }
func (KeyHistory) Kind() string { return "history" }
func (Audit) Kind() string      { return "audit" }
func (RootHash) Kind() string   { return "root_hash" }
