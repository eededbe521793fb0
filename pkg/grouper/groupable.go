package grouper

import (
	"path/filepath"
	"strings"
)

/**************************************************************************************************
** Classifier supplies the two pieces of filename-convention knowledge the grouping engine
** cannot derive on its own: what the edited rendition of a file would be called, and which
** burst sequence (if any) a file belongs to. Implementations must be deterministic for a
** given path and must not fail; a file that is not part of a burst reports an empty UUID.
**************************************************************************************************/
type Classifier interface {
	EditedStem(path string) string
	BurstUUID(path string) string
}

/**************************************************************************************************
** Groupable wraps one file on its way into the grouping trie. The lowercase stem is
** computed once at construction; the edited stem and burst UUID are computed through the
** classifier only when a comparison first needs them, then memoized. Classifier calls may
** touch the filesystem, and most files never reach a comparison branch, so the laziness is
** load-bearing.
**************************************************************************************************/
type Groupable struct {
	path       string
	stem       string
	classifier Classifier
	editedStem *string
	burstUUID  *string
}

/**************************************************************************************************
** NewGroupable wraps a path for grouping.
**
** @param path - The file path, not mutated and returned verbatim in output groups
** @param classifier - Source of the edited-stem and burst-UUID derived keys
** @return *Groupable - The wrapped file
**************************************************************************************************/
func NewGroupable(path string, classifier Classifier) *Groupable {
	return &Groupable{
		path:       path,
		stem:       strings.ToLower(pathStem(path)),
		classifier: classifier,
	}
}

// Path returns the wrapped file path.
func (g *Groupable) Path() string {
	return g.path
}

// Stem returns the lowercase filename stem.
func (g *Groupable) Stem() string {
	return g.stem
}

// Ext returns the lowercase file extension, including the leading dot.
func (g *Groupable) Ext() string {
	return strings.ToLower(filepath.Ext(g.path))
}

/**************************************************************************************************
** EditedStem returns the stem the edited rendition of this file would have, memoizing the
** classifier result after the first call.
**
** @return string - The lowercase edited stem
**************************************************************************************************/
func (g *Groupable) EditedStem() string {
	if g.editedStem == nil {
		stem := g.classifier.EditedStem(g.path)
		g.editedStem = &stem
	}
	return *g.editedStem
}

/**************************************************************************************************
** BurstUUID returns the burst sequence identifier for this file, memoizing the classifier
** result after the first call. An empty string means the file is not part of a burst.
**
** @return string - The burst UUID, or "" for non-burst files
**************************************************************************************************/
func (g *Groupable) BurstUUID() string {
	if g.burstUUID == nil {
		uuid := g.classifier.BurstUUID(g.path)
		g.burstUUID = &uuid
	}
	return *g.burstUUID
}

/**************************************************************************************************
** pathStem returns the filename without its directory and extension.
**
** @param path - The path to reduce
** @return string - The bare stem
**************************************************************************************************/
func pathStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
