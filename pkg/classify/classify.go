// Package classify provides filename-convention and metadata classifiers consumed by the
// grouping engine.
package classify

import (
	"path/filepath"
	"strings"
)

// DefaultEditedSuffix is the marker appended to a stem to name its edited rendition.
const DefaultEditedSuffix = "_edited"

/**************************************************************************************************
** Convention is a pure naming-convention classifier: the edited rendition of a file is the
** same stem with a configurable suffix appended, and no file is ever part of a burst. It
** does no I/O and is safe to share across goroutines.
**************************************************************************************************/
type Convention struct {
	EditedSuffix string
}

/**************************************************************************************************
** NewConvention returns a Convention using the given edited suffix, or DefaultEditedSuffix
** when empty.
**
** @param editedSuffix - Marker appended before the extension on edited renditions
** @return *Convention - The classifier
**************************************************************************************************/
func NewConvention(editedSuffix string) *Convention {
	if editedSuffix == "" {
		editedSuffix = DefaultEditedSuffix
	}
	return &Convention{EditedSuffix: editedSuffix}
}

/**************************************************************************************************
** EditedStem returns the lowercase stem the edited rendition of this file would have.
**
** @param path - The file path
** @return string - Lowercase stem plus the edited suffix
**************************************************************************************************/
func (c *Convention) EditedStem(path string) string {
	return strings.ToLower(stem(path) + c.EditedSuffix)
}

// BurstUUID always reports a non-burst file; Convention has no metadata access.
func (c *Convention) BurstUUID(path string) string {
	return ""
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
