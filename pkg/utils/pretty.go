// Package utils provides small shared helpers: a compiled-regex LRU cache, slice helpers
// and colorized console output for grouped files.
package utils

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

var colorGreen = color.New(color.FgGreen).Add(color.Bold).SprintFunc()
var colorCyan = color.New(color.FgCyan).SprintFunc()
var colorYellow = color.New(color.FgYellow).Add(color.Bold).SprintFunc()

/**************************************************************************************************
** PrintGroup renders one group of file paths, primary file highlighted first and companions
** indented below it. The optional annotation (e.g. a content fingerprint) is shown next to
** the primary.
**
** @param index - 1-based group number
** @param total - Total number of groups
** @param group - Paths in the group, primary first
** @param annotation - Extra text for the primary line, may be empty
**************************************************************************************************/
func PrintGroup(index, total int, group []string, annotation string) {
	header := fmt.Sprintf("[%d/%d]", index, total)
	primary := filepath.Base(group[0])
	if annotation != "" {
		fmt.Printf("%s %s %s\n", colorYellow(header), colorGreen(primary), colorCyan(annotation))
	} else {
		fmt.Printf("%s %s\n", colorYellow(header), colorGreen(primary))
	}
	for _, companion := range group[1:] {
		fmt.Printf("      %s\n", colorCyan(filepath.Base(companion)))
	}
}

/**************************************************************************************************
** Pretty function disasemble a variable and display it's struct and values
**************************************************************************************************/
func Pretty(variable ...interface{}) {
	spew.Config.Indent = "    "
	fmt.Printf("%s", colorYellow("----------------------------------\n"))
	for _, each := range variable {
		spew.Dump(each)
	}
	fmt.Printf("%s", colorYellow("----------------------------------\n"))
}
