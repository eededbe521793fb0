/**************************************************************************************************
** Main entry point for the import-grouper CLI. Groups the files of one directory into
** logical assets (original + sidecars + edited renditions + burst siblings) ahead of a
** photo-library import.
**************************************************************************************************/

package main

import (
	"os"

	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Application entry point. Sets up the CLI command structure using Cobra, including all
** available commands and their associated flags. Handles command execution and error
** reporting.
**************************************************************************************************/
func main() {
	var rootCmd = &cobra.Command{
		Use:   "import-grouper <directory>",
		Short: "Import Grouper CLI",
		Long:  "A tool to group the files of a directory into logical assets before import.",
		Args:  cobra.ExactArgs(1),
		Run:   runGroup,
	}

	var dupesCmd = &cobra.Command{
		Use:   "dupes <directory>",
		Short: "List byte-identical files",
		Long:  "Fingerprint every media file in a directory and list groups of byte-identical files.",
		Args:  cobra.ExactArgs(1),
		Run:   runDupes,
	}

	var sortCmd = &cobra.Command{
		Use:   "sort <directory>",
		Short: "Print the canonical import order",
		Long:  "Print the media files of a directory in the canonical order used for grouping.",
		Args:  cobra.ExactArgs(1),
		Run:   runSort,
	}

	rootCmd.PersistentFlags().StringVar(&editedSuffix, "edited-suffix", "", "Edited rendition suffix (or set EDITED_SUFFIX env var, default _edited)")
	rootCmd.PersistentFlags().StringVar(&includePattern, "include", "", "Only scan filenames matching this regex (or set INCLUDE env var)")
	rootCmd.PersistentFlags().StringVar(&extensions, "extensions", "", "Comma-separated media extensions to scan (or set EXTENSIONS env var)")
	rootCmd.Flags().BoolVar(&withFingerprint, "fingerprint", false, "Annotate each group's primary file with its content fingerprint")
	rootCmd.Flags().StringVar(&cacheDB, "cache-db", "", "Path of the sqlite fingerprint cache (or set CACHE_DB env var)")
	dupesCmd.Flags().StringVar(&cacheDB, "cache-db", "", "Path of the sqlite fingerprint cache (or set CACHE_DB env var)")
	dupesCmd.Flags().IntVar(&nearDistance, "near", -1, "Report perceptually similar images within this Hamming distance instead of byte-identical files (negative disables)")

	rootCmd.AddCommand(dupesCmd)
	rootCmd.AddCommand(sortCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
