package classify

import (
	"os"
	"regexp"

	"github.com/rwcarlsen/goexif/exif"
)

// uuidRE matches a UUID-shaped identifier such as the Apple BurstUUID value embedded in
// the maker-note payload.
var uuidRE = regexp.MustCompile(`(?i)[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}`)

/**************************************************************************************************
** ExifClassifier derives edited stems from a naming Convention and burst UUIDs from EXIF
** metadata. Apple cameras record the burst sequence identifier inside the proprietary
** maker-note blob rather than a standard EXIF field, so the lookup scans the raw payload
** for a UUID-shaped token. Every failure mode (unreadable file, no EXIF, no maker note, no
** UUID) fails open to "not a burst".
**************************************************************************************************/
type ExifClassifier struct {
	*Convention
}

/**************************************************************************************************
** NewExifClassifier returns a classifier combining the given naming convention with
** EXIF-based burst detection.
**
** @param convention - Naming convention for edited stems, nil for the default
** @return *ExifClassifier - The classifier
**************************************************************************************************/
func NewExifClassifier(convention *Convention) *ExifClassifier {
	if convention == nil {
		convention = NewConvention("")
	}
	return &ExifClassifier{Convention: convention}
}

/**************************************************************************************************
** BurstUUID returns the burst sequence identifier recorded in the file's maker note, or ""
** when the file carries none. Deterministic for a given file on disk.
**
** @param path - The file path
** @return string - The burst UUID, or "" for non-burst files
**************************************************************************************************/
func (c *ExifClassifier) BurstUUID(path string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer file.Close()

	meta, err := exif.Decode(file)
	if err != nil {
		return ""
	}
	tag, err := meta.Get(exif.MakerNote)
	if err != nil {
		return ""
	}
	return uuidRE.FindString(string(tag.Val))
}
