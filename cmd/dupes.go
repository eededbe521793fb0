/**************************************************************************************************
** Dupes command implementation for the import-grouper CLI. Fingerprints every media file in
** a directory and reports groups of byte-identical files, or of perceptually similar images
** when a near-match distance is set.
**************************************************************************************************/

package main

import (
	"fmt"

	"github.com/majorfi/import-grouper/pkg/fingerprint"
	"github.com/majorfi/import-grouper/pkg/grouper"
	"github.com/majorfi/import-grouper/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

/**************************************************************************************************
** Main execution logic for the dupes command. Hashes each file (through the cache when one
** is configured), buckets by digest and prints every bucket holding more than one file.
** With --near set to a non-negative distance, buckets by perception hash instead.
**
** @param cmd - Cobra command instance
** @param args - Command line arguments (the directory)
**************************************************************************************************/
func runDupes(cmd *cobra.Command, args []string) {
	logger := loadEnv()

	files, err := scanDir(args[0], logger)
	if err != nil {
		logger.Fatalf("Error scanning directory: %v", err)
	}
	if len(files) == 0 {
		logger.Info("No media files found")
		return
	}
	if nearDistance >= 0 {
		reportNearDupes(files, logger)
		return
	}

	var cache *fingerprint.Cache
	if cacheDB != "" {
		cache, err = fingerprint.OpenCache(cacheDB)
		if err != nil {
			logger.Fatalf("Error opening fingerprint cache: %v", err)
		}
		defer cache.Close()
	}

	/**********************************************************************************************
	** Bucket files by content identity, keeping first-seen digest order for deterministic
	** output.
	**********************************************************************************************/
	var order []string
	buckets := make(map[string][]string)
	for _, path := range files {
		digest, err := fingerprint.FileCached(cache, path)
		if err != nil {
			logger.Warnf("Could not fingerprint %s: %v", path, err)
			continue
		}
		if _, seen := buckets[digest]; !seen {
			order = append(order, digest)
		}
		buckets[digest] = append(buckets[digest], path)
	}

	duplicates := make([][]string, 0)
	for _, digest := range order {
		if len(buckets[digest]) > 1 {
			duplicates = append(duplicates, buckets[digest])
		}
	}
	if len(duplicates) == 0 {
		logger.Infof("No duplicates among %d files", len(files))
		return
	}

	logger.Infof("Found %d duplicate groups among %d files", len(duplicates), len(files))
	sorted := grouper.SortByPath(duplicates, func(group []string) string { return group[0] })
	for i, group := range sorted {
		utils.PrintGroup(i+1, len(sorted), group, "identical")
	}
}

/**************************************************************************************************
** Near-duplicate report: perception-hashes every image and clusters files whose hashes lie
** within the configured Hamming distance. Files that cannot be decoded as images (videos,
** sidecars) are skipped with a warning.
**
** @param files - Scanned media file paths
** @param logger - Logger instance
**************************************************************************************************/
func reportNearDupes(files []string, logger *logrus.Logger) {
	var paths []string
	var hashes []uint64
	for _, path := range files {
		hash, err := fingerprint.Perceptual(path)
		if err != nil {
			logger.Warnf("Could not hash %s: %v", path, err)
			continue
		}
		paths = append(paths, path)
		hashes = append(hashes, hash)
	}

	similar := make([][]string, 0)
	for _, cluster := range fingerprint.ClusterByDistance(paths, hashes, nearDistance) {
		if len(cluster) > 1 {
			similar = append(similar, cluster)
		}
	}
	if len(similar) == 0 {
		logger.Infof("No similar images among %d files (distance <= %d)", len(paths), nearDistance)
		return
	}

	logger.Infof("Found %d similar groups among %d files", len(similar), len(paths))
	sorted := grouper.SortByPath(similar, func(group []string) string { return group[0] })
	for i, group := range sorted {
		utils.PrintGroup(i+1, len(sorted), group, fmt.Sprintf("similar <=%d", nearDistance))
	}
}
