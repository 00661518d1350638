package framework

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse normalizes line in place and classifies it into a Command.
// It never fails: malformed input is reported through InvalidArgs or Unknown.
func Parse(line *string) Command {
	TrimNewline(line)
	parts := tokenize(*line)

	var head string
	if len(parts) > 0 {
		head = parts[0]
	}

	switch cmd := strings.ToLower(head); cmd {
	case "exit", "x":
		return Exit{}
	case "help", "?":
		return Help{}
	case "flush":
		return Flush{}
	case "info":
		return Info{}
	default:
		return handleDirectoryCommand(cmd, parts, *line)
	}
}

// ParseLine is Parse for callers holding the line by value.
func ParseLine(line string) Command {
	return Parse(&line)
}

// TrimNewline strips one trailing "\n" and, after it, one "\r".
// A "\r" without a following "\n" is kept.
func TrimNewline(line *string) {
	s := *line
	if strings.HasSuffix(s, "\n") {
		s = s[:len(s)-1]
		s = strings.TrimSuffix(s, "\r")
	}
	*line = s
}

// tokenize splits on every single space, so consecutive spaces produce empty tokens.
func tokenize(line string) []string {
	if line == "" {
		return nil
	}
	return strings.Split(line, " ")
}

func handleDirectoryCommand(cmd string, parts []string, fullText string) Command {
	var (
		dirCmd DirectoryCommand
		ok     bool
	)
	switch cmd {
	case "publish":
		dirCmd, ok = parsePublish(parts)
	case "lookup":
		dirCmd, ok = parseLookup(parts)
	case "history":
		dirCmd, ok = parseKeyHistory(parts)
	case "audit":
		dirCmd, ok = parseAudit(parts)
	case "root", "root_hash":
		dirCmd, ok = parseRootHash(parts)
	default:
		return Unknown{Text: fullText}
	}

	if !ok {
		return InvalidArgs{
			Message: fmt.Sprintf("Command %s received invalid arguments. Check %s for syntax", cmd, "help"),
		}
	}
	return Directory{Cmd: dirCmd}
}

func parsePublish(parts []string) (DirectoryCommand, bool) {
	if len(parts) < 3 {
		return nil, false
	}
	return Publish{User: parts[1], Value: parts[2]}, true
}

func parseLookup(parts []string) (DirectoryCommand, bool) {
	if len(parts) < 2 {
		return nil, false
	}
	return Lookup{User: parts[1]}, true
}

func parseKeyHistory(parts []string) (DirectoryCommand, bool) {
	if len(parts) < 2 {
		return nil, false
	}
	return KeyHistory{User: parts[1]}, true
}

func parseAudit(parts []string) (DirectoryCommand, bool) {
	if len(parts) < 3 {
		return nil, false
	}
	start, err := parseEpoch(parts[1])
	if err != nil {
		return nil, false
	}
	end, err := parseEpoch(parts[2])
	if err != nil {
		return nil, false
	}
	return Audit{Start: start, End: end}, true
}

// parseRootHash never rejects, an unparsable epoch falls back to the latest one.
func parseRootHash(parts []string) (DirectoryCommand, bool) {
	cmd := RootHash{}
	if len(parts) > 1 {
		if epoch, err := parseEpoch(parts[1]); err == nil {
			cmd.Epoch = &epoch
		}
	}
	return cmd, true
}

// parseEpoch accepts base-10 digits only: no sign, no surrounding whitespace.
func parseEpoch(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
