package grouper

import (
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/************************************************************************************************
** Test helper functions and types
************************************************************************************************/

// fakeClassifier derives edited stems from the default "_edited" convention and reports
// burst membership from a fixed filename -> UUID table.
type fakeClassifier struct {
	bursts map[string]string
}

func (c *fakeClassifier) EditedStem(path string) string {
	return strings.ToLower(pathStem(path)) + "_edited"
}

func (c *fakeClassifier) BurstUUID(path string) string {
	return c.bursts[filepath.Base(path)]
}

func inDir(names ...string) []string {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join("/imports", name)
	}
	return paths
}

func groupNames(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, group := range groups {
		names := make([]string, len(group))
		for j, path := range group {
			names[j] = filepath.Base(path)
		}
		out[i] = names
	}
	return out
}

/************************************************************************************************
** Regression fixtures for the grouping pipeline
************************************************************************************************/

func TestGroupFilesForImport(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		bursts   map[string]string
		expected [][]string
	}{
		{
			name:  "original with aae sidecar",
			files: inDir("IMG_1234.JPG", "IMG_1234.aae"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234.aae"},
			},
		},
		{
			name:  "camera edited companion joins the original",
			files: inDir("IMG_1234.JPG", "IMG_1234.aae", "IMG_E1234.JPG"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234.aae", "IMG_E1234.JPG"},
			},
		},
		{
			name:  "edited rendition chains onto the companion",
			files: inDir("IMG_1234.JPG", "IMG_1234.aae", "IMG_E1234.JPG", "IMG_E1234_edited.JPG"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234.aae", "IMG_E1234.JPG", "IMG_E1234_edited.JPG"},
			},
		},
		{
			name:  "companion and its rendition with heic original",
			files: inDir("IMG_2002.heic", "IMG_E2002.heic", "IMG_E2002_edited.JPG"),
			expected: [][]string{
				{"IMG_2002.heic", "IMG_E2002.heic", "IMG_E2002_edited.JPG"},
			},
		},
		{
			name:  "edited rendition joins the original by stem",
			files: inDir("IMG_1234.JPG", "IMG_1234_edited.JPG"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234_edited.JPG"},
			},
		},
		{
			name:  "live photo family stays together",
			files: inDir("IMG_1234.JPG", "IMG_1234.mov", "IMG_1234.aae", "IMG_1234_edited.mov"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234.mov", "IMG_1234.aae", "IMG_1234_edited.mov"},
			},
		},
		{
			name:  "unrelated stems stay apart",
			files: inDir("IMG_1234.JPG", "IMG_5678.JPG"),
			expected: [][]string{
				{"IMG_1234.JPG"},
				{"IMG_5678.JPG"},
			},
		},
		{
			name:  "adjustment sidecar with trailing o marker",
			files: inDir("IMG_1234.JPG", "IMG_1234_O.aae"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_1234_O.aae"},
			},
		},
		{
			name:  "adjustment sidecar with o digits marker",
			files: inDir("IMG_1234.JPG", "IMG_O1234.aae"),
			expected: [][]string{
				{"IMG_1234.JPG", "IMG_O1234.aae"},
			},
		},
		{
			name:  "increment suffix in different positions",
			files: inDir("IMG_1234 (1).jpg", "IMG_1234_edited (1).jpg"),
			expected: [][]string{
				{"IMG_1234 (1).jpg", "IMG_1234_edited (1).jpg"},
			},
		},
		{
			name:  "edited rendition without original stands alone",
			files: inDir("IMG_9999_edited.jpg", "IMG_1234.JPG"),
			expected: [][]string{
				{"IMG_1234.JPG"},
				{"IMG_9999_edited.jpg"},
			},
		},
		{
			name:  "single file",
			files: inDir("IMG_0001.JPG"),
			expected: [][]string{
				{"IMG_0001.JPG"},
			},
		},
		{
			name:  "burst overrides stem grouping",
			files: inDir("IMG_8001.heic", "IMG_8002.heic", "IMG_8003.heic", "IMG_E8003.JPG", "IMG_8004.heic"),
			bursts: map[string]string{
				"IMG_8001.heic": "9A62BGT2-5C3K",
				"IMG_8002.heic": "9A62BGT2-5C3K",
				"IMG_8003.heic": "9A62BGT2-5C3K",
				"IMG_E8003.JPG": "9A62BGT2-5C3K",
				"IMG_8004.heic": "9A62BGT2-5C3K",
			},
			expected: [][]string{
				{"IMG_8001.heic", "IMG_8002.heic", "IMG_8003.heic", "IMG_E8003.JPG", "IMG_8004.heic"},
			},
		},
		{
			name:  "distinct bursts stay apart",
			files: inDir("IMG_8001.heic", "IMG_8002.heic", "IMG_9001.heic"),
			bursts: map[string]string{
				"IMG_8001.heic": "burst-a",
				"IMG_8002.heic": "burst-a",
				"IMG_9001.heic": "burst-b",
			},
			expected: [][]string{
				{"IMG_8001.heic", "IMG_8002.heic"},
				{"IMG_9001.heic"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := &fakeClassifier{bursts: tt.bursts}
			groups, err := GroupFilesForImport(tt.files, classifier, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, groupNames(groups))
		})
	}
}

/************************************************************************************************
** Invariants
************************************************************************************************/

func TestGroupFilesForImportPartition(t *testing.T) {
	files := inDir(
		"IMG_1234.JPG", "IMG_1234.aae", "IMG_E1234.JPG", "IMG_E1234_edited.JPG",
		"IMG_2002.heic", "IMG_E2002.heic", "IMG_E2002_edited.JPG",
		"IMG_5678.JPG", "holiday.png", "IMG_9999_edited.jpg",
		"IMG_1234 (1).jpg", "IMG_1234_edited (1).jpg",
	)
	groups, err := GroupFilesForImport(files, &fakeClassifier{}, nil, nil)
	require.NoError(t, err)

	var flattened []string
	for _, group := range groups {
		flattened = append(flattened, group...)
	}
	assert.ElementsMatch(t, files, flattened, "no file dropped, none duplicated")
}

func TestGroupFilesForImportMixedDirectories(t *testing.T) {
	files := []string{
		filepath.Join("/imports", "IMG_1234.JPG"),
		filepath.Join("/other", "IMG_5678.JPG"),
	}
	groups, err := GroupFilesForImport(files, &fakeClassifier{}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMixedDirectories)
	assert.Nil(t, groups)
}

func TestGroupFilesForImportEmptyInput(t *testing.T) {
	groups, err := GroupFilesForImport(nil, &fakeClassifier{}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupFilesForImportDebugTraces(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	files := inDir("IMG_1234.JPG", "IMG_1234.aae", "IMG_8001.heic", "IMG_8002.heic")
	bursts := map[string]string{
		"IMG_8001.heic": "burst-a",
		"IMG_8002.heic": "burst-a",
	}
	_, err := GroupFilesForImport(files, &fakeClassifier{bursts: bursts}, nil, logger)
	require.NoError(t, err)

	var inserted, merged int
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		if _, ok := entry.Data["stem"]; ok {
			inserted++
		}
		if _, ok := entry.Data["burst"]; ok {
			merged++
		}
	}
	assert.Equal(t, len(files), inserted, "one insertion trace per file")
	assert.Equal(t, 2, merged, "one merge trace per burst member group")
}

func TestGroupFilesForImportQuietAboveDebug(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	_, err := GroupFilesForImport(inDir("IMG_1234.JPG"), &fakeClassifier{}, nil, logger)
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestGroupFilesForImportProgress(t *testing.T) {
	files := inDir("IMG_1234.JPG", "IMG_1234.aae", "IMG_5678.JPG")
	calls := 0
	_, err := GroupFilesForImport(files, &fakeClassifier{}, func() { calls++ }, nil)
	require.NoError(t, err)
	assert.Equal(t, len(files), calls)
}

/************************************************************************************************
** Canonical sort
************************************************************************************************/

func TestSortByPathCanonicalOrder(t *testing.T) {
	expected := []string{
		"ABC_0234.jpg",
		"ABC_1234.jpg",
		"ABC_1234.mov",
		"ABC_3234.mov",
		"ABC_1234.aae",
		"ABC_E1234.jpg",
		"ABC_1234_edited.jpg",
		"IMG_0000.jpg",
	}

	shuffled := make([]string, len(expected))
	copy(shuffled, expected)
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		sorted := SortByPath(inDir(shuffled...), func(path string) string { return path })
		assert.Equal(t, inDir(expected...), sorted, "trial %d", trial)
	}
}

func TestSortByPathIdempotent(t *testing.T) {
	files := inDir("IMG_1234_edited.mov", "IMG_1234.aae", "b.jpg", "a_1.jpg", "IMG_1234.JPG")
	once := SortByPath(files, func(path string) string { return path })
	twice := SortByPath(once, func(path string) string { return path })
	assert.Equal(t, once, twice)
}

func TestSortByPathNoUnderscoreStem(t *testing.T) {
	sorted := SortByPath(inDir("zebra.jpg", "apple.jpg", "apple_1.jpg"), func(path string) string { return path })
	assert.Equal(t, inDir("apple.jpg", "apple_1.jpg", "zebra.jpg"), sorted)
}

func TestSortByPathDoesNotMutateInput(t *testing.T) {
	files := inDir("b.jpg", "a.jpg")
	SortByPath(files, func(path string) string { return path })
	assert.Equal(t, inDir("b.jpg", "a.jpg"), files)
}
