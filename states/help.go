package states

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/dirwatcher/dirwatcher/framework"
)

const helpColumn = 32

var (
	cmdColor      = color.New(color.FgGreen)
	mandatoryArgs = color.New(color.FgBlue)
	optionalArgs  = color.New(color.FgMagenta)
	titleColor    = color.New(color.FgRed)
)

// printHelp writes the help menu built from the command vocabulary.
func printHelp(w io.Writer, vocabulary []framework.CommandDesc) {
	fmt.Fprintln(w, titleColor.Sprint("*************************** Help menu ***************************"))
	fmt.Fprintf(w, "%s are commands, %s are mandatory args, %s are optional args\n",
		cmdColor.Sprint("green"), mandatoryArgs.Sprint("blue"), optionalArgs.Sprint("magenta"))
	fmt.Fprintln(w, "=============================================================")
	for _, desc := range vocabulary {
		fmt.Fprintln(w, helpLine(desc))
	}
}

// helpLine pads on the uncolored width so descriptions line up with or without color.
func helpLine(desc framework.CommandDesc) string {
	names := strings.Join(lo.Map(desc.Names, func(name string, _ int) string {
		return cmdColor.Sprint(name)
	}), "|")
	plainWidth := len(strings.Join(desc.Names, "|"))

	args := lo.Map(desc.Args, func(arg framework.Arg, _ int) string {
		plainWidth += len(arg.Name) + 1
		if arg.Optional {
			return optionalArgs.Sprint(arg.Name)
		}
		return mandatoryArgs.Sprint(arg.Name)
	})

	usage := names
	if len(args) > 0 {
		usage = fmt.Sprintf("%s %s", names, strings.Join(args, " "))
	}
	padding := 1
	if plainWidth+1 < helpColumn {
		padding = helpColumn - plainWidth - 1
	}
	return fmt.Sprintf("  %s:%s%s", usage, strings.Repeat(" ", padding), desc.Short)
}
