package autocomplete

import (
	"strings"

	"github.com/samber/lo"
)

func parseInput(input string) inputResult {
	// check is end with space
	isEndBlank := strings.HasSuffix(input, " ")

	parts := strings.Split(input, " ")
	parts = lo.Filter(parts, func(part string, idx int) bool {
		return part != ""
	})

	comps := lo.Map(parts, func(part string, _ int) cComp {
		return cComp{
			raw:   part,
			cTag:  part,
			cType: cmdCompCommand,
		}
	})

	// add empty comp if end with space
	if isEndBlank {
		comps = append(comps, cComp{cType: cmdCompCommand})
	}

	return inputResult{
		parts: comps,
	}
}
