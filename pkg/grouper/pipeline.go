package grouper

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrMixedDirectories is returned when the input files do not share one parent directory.
var ErrMixedDirectories = errors.New("all files must share the same parent directory")

/**************************************************************************************************
** GroupFilesForImport deduplicates and groups a flat directory listing so that files
** representing one logical asset (an original, its AAE sidecar, live-photo video, edited
** renditions, burst siblings) come out as one group. The returned groups each start with
** the primary file; the groups list is canonically ordered by each group's first path.
**
** The input must be a single directory's listing: a file whose parent differs from the
** first file's parent fails the call with ErrMixedDirectories. An empty input returns no
** groups and no error. The optional advance callback fires once per file inserted, for
** progress reporting; its behavior is fire-and-forget.
**
** Insertion order decides which file becomes each trie node's reference file for the
** suffix-equivalence comparisons, so the canonical pre-sort here is load-bearing, not
** cosmetic.
**
** @param files - Paths from one directory, any order
** @param classifier - Filename-convention knowledge (edited stems, burst UUIDs)
** @param advance - Optional per-file progress callback, may be nil
** @param logger - Logger for debug traces, may be nil
** @return [][]string - Ordered groups of paths, primary file first in each
** @return error - ErrMixedDirectories (wrapped) on a parent-directory mismatch
**************************************************************************************************/
func GroupFilesForImport(files []string, classifier Classifier, advance func(), logger *logrus.Logger) ([][]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	/**********************************************************************************************
	** Sort, wrap and insert. The shared-parent invariant is validated per item so the call
	** fails on the first offender.
	**********************************************************************************************/
	sorted := SortByPath(files, func(path string) string { return path })
	parent := filepath.Dir(sorted[0])
	logger.Debugf("Grouping %d files from %s", len(sorted), parent)
	root := NewRoot()
	for _, path := range sorted {
		if filepath.Dir(path) != parent {
			return nil, fmt.Errorf("%w: %q is not in %q", ErrMixedDirectories, path, parent)
		}
		item := NewGroupable(path, classifier)
		if logger.Level == logrus.DebugLevel {
			logger.WithFields(logrus.Fields{"stem": item.Stem()}).Debugf("Inserting %s", filepath.Base(path))
		}
		root.Add(item)
		if advance != nil {
			advance()
		}
	}

	/**********************************************************************************************
	** Burst merge: stem-based groups whose primary file carries a burst UUID are combined
	** across that UUID, regardless of how dissimilar their stems are. First-seen order is
	** kept explicitly since map iteration order is not deterministic.
	**********************************************************************************************/
	var burstOrder []string
	burstGroups := make(map[string][]*Groupable)
	var plain [][]*Groupable
	for _, group := range root.Collect() {
		uuid := group[0].BurstUUID()
		if uuid == "" {
			plain = append(plain, group)
			continue
		}
		if _, seen := burstGroups[uuid]; !seen {
			burstOrder = append(burstOrder, uuid)
		}
		if logger.Level == logrus.DebugLevel {
			logger.WithFields(logrus.Fields{"burst": uuid}).Debugf("Merging group led by %s", filepath.Base(group[0].Path()))
		}
		burstGroups[uuid] = append(burstGroups[uuid], group...)
	}

	merged := make([][]*Groupable, 0, len(burstOrder)+len(plain))
	for _, uuid := range burstOrder {
		merged = append(merged, burstGroups[uuid])
	}
	merged = append(merged, plain...)
	logger.Debugf("Built %d groups (%d burst-merged)", len(merged), len(burstOrder))

	/**********************************************************************************************
	** Unwrap to bare paths and order the groups list by each group's first path. Order
	** within a group stays as built: the primary is first by construction.
	**********************************************************************************************/
	groups := make([][]string, len(merged))
	for i, group := range merged {
		paths := make([]string, len(group))
		for j, item := range group {
			paths[j] = item.Path()
		}
		groups[i] = paths
	}
	return SortByPath(groups, func(group []string) string { return group[0] }), nil
}

/**************************************************************************************************
** SortByPath returns a stably sorted copy of items ordered by the canonical import order of
** the path each item yields. The sort key, in order: the stem's base name before the first
** "_", the stem length (shorter first), whether the file is an AAE sidecar, whether it is a
** video, and finally the filename itself. For a live-photo family this puts the plain photo
** first, then its video, then longer-stem edited renditions, with the AAE sidecar deferred
** behind any same-length video.
**
** @param items - Items to sort, not mutated
** @param pathOf - Extracts the path an item is ordered by
** @return []T - A new sorted slice
**************************************************************************************************/
func SortByPath[T any](items []T, pathOf func(T) string) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return pathSortKey(pathOf(sorted[i])).less(pathSortKey(pathOf(sorted[j])))
	})
	return sorted
}

type pathKey struct {
	base    string
	stemLen int
	aae     bool
	video   bool
	name    string
}

func pathSortKey(path string) pathKey {
	// The stem-derived components are lowercased here rather than by callers, so
	// mixed-case batches order deterministically. The raw filename keeps its case
	// as the final tiebreak.
	stem := strings.ToLower(pathStem(path))
	base := stem
	if i := strings.IndexByte(stem, '_'); i >= 0 {
		base = stem[:i]
	}
	ext := strings.ToLower(filepath.Ext(path))
	return pathKey{
		base:    base,
		stemLen: len(stem),
		aae:     ext == ".aae",
		video:   ext == ".mov" || ext == ".mp4",
		name:    filepath.Base(path),
	}
}

func (k pathKey) less(other pathKey) bool {
	if k.base != other.base {
		return k.base < other.base
	}
	if k.stemLen != other.stemLen {
		return k.stemLen < other.stemLen
	}
	if k.aae != other.aae {
		return !k.aae
	}
	if k.video != other.video {
		return !k.video
	}
	return k.name < other.name
}
