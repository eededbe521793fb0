/**************************************************************************************************
** Group command implementation for the import-grouper CLI. Scans one directory, groups its
** media files into logical assets and prints the resulting groups.
**************************************************************************************************/

package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/majorfi/import-grouper/pkg/classify"
	"github.com/majorfi/import-grouper/pkg/fingerprint"
	"github.com/majorfi/import-grouper/pkg/grouper"
	"github.com/majorfi/import-grouper/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** scanDir returns the media files of one directory, non-recursively, filtered by the
** configured extension list and the optional include regex.
**
** @param dir - Directory to scan
** @param logger - Logger instance for reporting skipped entries
** @return []string - Full paths of the matching files
** @return error - Read or regex compilation error
**************************************************************************************************/
func scanDir(dir string, logger *logrus.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	allowed := utils.RemoveEmptyStrings(strings.Split(strings.ToLower(extensions), ","))
	var include *regexp.Regexp
	if includePattern != "" {
		include, err = utils.RegexCompile(includePattern)
		if err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !utils.Contains(allowed, strings.ToLower(filepath.Ext(name))) {
			logger.Debugf("Skipping %s: extension not in scan list", name)
			continue
		}
		if include != nil && !include.MatchString(name) {
			logger.Debugf("Skipping %s: does not match include pattern", name)
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

/**************************************************************************************************
** Main execution logic for the group command. Scans the directory, runs the grouping
** pipeline and prints one block per logical asset, optionally annotated with the primary
** file's content fingerprint.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments (the directory)
**************************************************************************************************/
func runGroup(cmd *cobra.Command, args []string) {
	logger := loadEnv()

	files, err := scanDir(args[0], logger)
	if err != nil {
		logger.Fatalf("Error scanning directory: %v", err)
	}
	if len(files) == 0 {
		logger.Info("No media files found")
		return
	}
	logger.Infof("Grouping %d files from %s", len(files), args[0])

	/**********************************************************************************************
	** Group the files into logical assets.
	**********************************************************************************************/
	classifier := classify.NewExifClassifier(classify.NewConvention(editedSuffix))
	processed := 0
	groups, err := grouper.GroupFilesForImport(files, classifier, func() {
		processed++
		if processed%100 == 0 {
			logger.Debugf("Processed %d/%d files", processed, len(files))
		}
	}, logger)
	if err != nil {
		logger.Fatalf("Error grouping files: %v", err)
	}
	if logger.Level == logrus.DebugLevel {
		utils.Pretty(groups)
	}

	/**********************************************************************************************
	** Optional fingerprint annotation, cache-backed when a cache path is configured.
	**********************************************************************************************/
	var cache *fingerprint.Cache
	if withFingerprint && cacheDB != "" {
		cache, err = fingerprint.OpenCache(cacheDB)
		if err != nil {
			logger.Fatalf("Error opening fingerprint cache: %v", err)
		}
		defer cache.Close()
	}

	logger.Infof("Found %d groups", len(groups))
	for i, group := range groups {
		annotation := ""
		if withFingerprint {
			digest, err := fingerprint.FileCached(cache, group[0])
			if err != nil {
				logger.Warnf("Could not fingerprint %s: %v", group[0], err)
			} else {
				annotation = digest[:12]
			}
		}
		utils.PrintGroup(i+1, len(groups), group, annotation)
	}
}
