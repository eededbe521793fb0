package grouper

import (
	"regexp"

	"github.com/majorfi/import-grouper/pkg/utils"
)

/**************************************************************************************************
** Filename convention recognizers. Importers and exporters leave predictable marks on
** filenames: a trailing " (N)" increment added to disambiguate duplicates, an "_edited"
** suffix on a rendered edit, and the camera convention of pairing IMG_1234 with IMG_E1234
** for the in-camera edited companion. All patterns are compiled once at package
** initialization.
**************************************************************************************************/
var incrementSuffixRE = regexp.MustCompile(`^(.*) \(\d+\)$`)
var editedThenIncrementRE = regexp.MustCompile(`(?i)^(.*)(_edited) \((\d+)\)$`)
var incrementThenEditedRE = regexp.MustCompile(`(?i)^(.*) \(\d+\)(_edited)$`)
var editedInfixRE = regexp.MustCompile(`(?i)^(.*[a-z]{3})_e(\d+)$`)
var editedMarkerRE = regexp.MustCompile(`(?i)[a-z]{3}_e\d{4}`)
var editedPairRE = regexp.MustCompile(`(?i)^(.*)([a-z]{3})_(\d{4})`)

/**************************************************************************************************
** StripIncrementSuffix removes a trailing " (N)" increment marker from a stem.
**
** @param stem - The stem to strip
** @return string - The stem without the increment suffix, or the input unchanged
**************************************************************************************************/
func StripIncrementSuffix(stem string) string {
	if match := incrementSuffixRE.FindStringSubmatch(stem); match != nil {
		return match[1]
	}
	return stem
}

/**************************************************************************************************
** NormalizeEditedStem canonicalizes the position of an increment suffix relative to an
** "_edited" marker so that "name (1)_edited" and "name_edited (1)" both normalize to
** "name_edited". The function is idempotent: the normalized form carries no increment
** suffix, so a second application is a no-op.
**
** @param stem - The stem to normalize
** @return string - The normalized stem, or the input unchanged when neither form matches
**************************************************************************************************/
func NormalizeEditedStem(stem string) string {
	if match := editedThenIncrementRE.FindStringSubmatch(stem); match != nil {
		return match[1] + match[2]
	}
	if match := incrementThenEditedRE.FindStringSubmatch(stem); match != nil {
		return match[1] + match[2]
	}
	return stem
}

/**************************************************************************************************
** OriginalStemsForEditedWithIncrement returns candidate original stems for an edited stem
** carrying an increment suffix, in priority order. For "<base>_edited (N)" the direct
** candidate is "<base> (N)". When <base> itself follows the camera edited-companion
** convention (e.g. "img_e1235"), the "e"-stripped variant "img_1235 (N)" is appended as a
** second candidate, since the original the edit belongs to never carries the "e".
**
** @param stem - The stem to analyze
** @return []string - Candidate original stems, empty when the stem has no "_edited (N)" tail
**************************************************************************************************/
func OriginalStemsForEditedWithIncrement(stem string) []string {
	match := editedThenIncrementRE.FindStringSubmatch(stem)
	if match == nil {
		return nil
	}
	base, increment := match[1], match[3]
	candidates := []string{base + " (" + increment + ")"}
	if infix := editedInfixRE.FindStringSubmatch(base); infix != nil {
		candidates = append(candidates, infix[1]+"_"+infix[2]+" ("+increment+")")
	}
	return candidates
}

/**************************************************************************************************
** hasEditedMarker reports whether a path contains a "<3 letters>_E<4 digits>" token
** anywhere, the camera convention marking an edited companion file.
**
** @param path - The path to test
** @return bool - True if the path carries the edited-companion marker
**************************************************************************************************/
func hasEditedMarker(path string) bool {
	return editedMarkerRE.MatchString(path)
}

/**************************************************************************************************
** isEditedVersionOfFile reports whether file2 is the camera-generated edited companion of
** file1: file1 parses as "<prefix><code>_<number>" with a 3-letter code and 4-digit number,
** and file2 starts with the same prefix and code followed by "_E" and the same number.
**
** @param file1 - Path of the candidate original
** @param file2 - Path of the candidate edited companion
** @return bool - True if file2 is the "_E" companion of file1
**************************************************************************************************/
func isEditedVersionOfFile(file1, file2 string) bool {
	match := editedPairRE.FindStringSubmatch(file1)
	if match == nil {
		return false
	}
	companion, err := utils.RegexCompile(`(?i)^` + regexp.QuoteMeta(match[1]+match[2]) + `_e` + match[3])
	if err != nil {
		return false
	}
	return companion.MatchString(file2)
}
