package autocomplete

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/dirwatcher/dirwatcher/framework"
)

// acCandidate is the interface for auto-complete candidates.
type acCandidate interface {
	Match(cComp) bool
	NextCandidates(cComp, []acCandidate) []acCandidate
	Suggest(cComp) map[string]string
}

// cmdCandidate wraps framework.CommandDesc as acCandidate.
type cmdCandidate struct {
	desc framework.CommandDesc
}

// usage renders the argument roles, optional ones in brackets.
func (c *cmdCandidate) usage() string {
	args := lo.Map(c.desc.Args, func(arg framework.Arg, _ int) string {
		if arg.Optional {
			return fmt.Sprintf("[%s]", arg.Name)
		}
		return fmt.Sprintf("<%s>", arg.Name)
	})
	if len(args) == 0 {
		return c.desc.Short
	}
	return fmt.Sprintf("%s: %s", strings.Join(args, " "), c.desc.Short)
}

// Match implements acCandidate, compares the head case insensitively.
func (c *cmdCandidate) Match(input cComp) bool {
	return input.cType == cmdCompCommand && lo.Contains(c.desc.Names, strings.ToLower(input.cTag))
}

// NextCandidates implements acCandidate, returns the first argument if any.
func (c *cmdCandidate) NextCandidates(_ cComp, _ []acCandidate) []acCandidate {
	return argCandidates(c.desc.Args)
}

func (c *cmdCandidate) Suggest(target cComp) map[string]string {
	result := make(map[string]string)
	for _, name := range c.desc.Names {
		if strings.HasPrefix(name, strings.ToLower(target.cTag)) || target.cType == cmdCompAll {
			result[name] = c.usage()
		}
	}
	return result
}

// argCandidate is one positional argument, values come from the suggester registered under its name.
type argCandidate struct {
	arg  framework.Arg
	rest []framework.Arg
}

func argCandidates(args []framework.Arg) []acCandidate {
	if len(args) == 0 {
		return nil
	}
	return []acCandidate{&argCandidate{arg: args[0], rest: args[1:]}}
}

// Match implements acCandidate, any word fills a positional argument.
func (c *argCandidate) Match(input cComp) bool {
	return input.cType == cmdCompCommand
}

func (c *argCandidate) NextCandidates(_ cComp, _ []acCandidate) []acCandidate {
	return argCandidates(c.rest)
}

func (c *argCandidate) Suggest(target cComp) map[string]string {
	s, ok := GetValueSuggester(c.arg.Name)
	if !ok {
		return map[string]string{}
	}
	result := make(map[string]string)
	for _, v := range s.Suggest(target.cTag) {
		if strings.HasPrefix(v, target.cTag) || target.cType == cmdCompAll {
			result[v] = c.arg.Name
		}
	}
	return result
}

// SuggestInputCommands returns suggestions for input based on the command vocabulary.
func SuggestInputCommands(input string, vocabulary []framework.CommandDesc) map[string]string {
	iResult := parseInput(input)

	return findCmdSuggestions(iResult.parts, vocabulary)
}

func findCmdSuggestions(comps []cComp, vocabulary []framework.CommandDesc) map[string]string {
	// no suggestion if input is empty
	if len(comps) == 0 {
		return map[string]string{}
	}

	candidates := lo.Map(vocabulary, func(desc framework.CommandDesc, _ int) acCandidate {
		return &cmdCandidate{desc: desc}
	})

	// reduce leading components
	// for example
	// "lookup al", ac target shall be "al"
	// "look", ac target shall be "look"
loop:
	for i := 0; i < len(comps)-1; i++ {
		for _, candidate := range candidates {
			if candidate.Match(comps[i]) {
				candidates = candidate.NextCandidates(comps[i], candidates)
				continue loop
			}
		}
		return map[string]string{}
	}

	target := comps[len(comps)-1]
	// check candidates has target prefix
	result := make(map[string]string)
	for _, candidate := range candidates {
		for k, v := range candidate.Suggest(target) {
			result[k] = v
		}
	}

	return result
}
