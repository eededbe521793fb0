/**************************************************************************************************
** Sort command implementation for the import-grouper CLI. Prints the media files of a
** directory in the canonical order the grouping pipeline would process them.
**************************************************************************************************/

package main

import (
	"fmt"
	"path/filepath"

	"github.com/majorfi/import-grouper/pkg/grouper"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Main execution logic for the sort command.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments (the directory)
**************************************************************************************************/
func runSort(cmd *cobra.Command, args []string) {
	logger := loadEnv()

	files, err := scanDir(args[0], logger)
	if err != nil {
		logger.Fatalf("Error scanning directory: %v", err)
	}

	for _, path := range grouper.SortByPath(files, func(path string) string { return path }) {
		fmt.Println(filepath.Base(path))
	}
}
