package grouper

import (
	"sort"
	"strings"
	"unicode/utf8"
)

/**************************************************************************************************
** groupingNode is one branch point in the stem-character trie. Files land on the node where
** their stem search terminated, or where a suffix-equivalence rule matched them against an
** earlier arrival. A node holding files is a completed group, but may still have children:
** a shorter stem's group coexists with longer stems sharing its prefix. The first file
** appended to a node is the reference file later arrivals are compared against, which is
** why insertion order is load-bearing.
**************************************************************************************************/
type groupingNode struct {
	children map[rune]*groupingNode
	files    []*Groupable
}

func newGroupingNode() *groupingNode {
	return &groupingNode{children: make(map[rune]*groupingNode)}
}

/**************************************************************************************************
** add inserts an item into the subtree rooted at this node. remaining is the suffix of the
** item's stem not yet consumed by the walk. maybeE marks a speculative probe: the caller is
** testing the location the stem would occupy with its "_e" edited-companion marker removed,
** rather than its literal stem. A probe may only join a group whose reference file is
** confirmed to be the item's original; otherwise the item is bounced back to the caller,
** which falls through to the literal character walk.
**
** @param item - The file to place
** @param remaining - Unconsumed suffix of the item's stem
** @param maybeE - True when probing the "_e"-stripped candidate location
** @return *Groupable - nil when the item was placed, or the item itself on a bounced probe
**************************************************************************************************/
func (n *groupingNode) add(item *Groupable, remaining string, maybeE bool) *Groupable {
	/**********************************************************************************************
	** Terminal case: the stem is fully consumed at this node. Probes only land on a
	** confirmed edited-companion match; literal walks always land.
	**********************************************************************************************/
	if remaining == "" {
		if maybeE {
			if len(n.files) > 0 && isEditedVersionOfFile(n.files[0].path, item.path) {
				n.files = append(n.files, item)
				return nil
			}
			return item
		}
		n.files = append(n.files, item)
		return nil
	}

	/**********************************************************************************************
	** Suffix equivalence: before walking deeper past a completed group, check whether the
	** item is the edited rendition of the group's reference file, either directly or with
	** the increment suffix repositioned. Files carrying the camera "_E" marker are also
	** checked against earlier "_E" siblings in the group, so a chain like IMG_1234 ->
	** IMG_E1234 -> IMG_E1234_edited collapses into one group.
	**********************************************************************************************/
	if len(n.files) > 0 {
		reference := n.files[0]
		if reference.EditedStem() == item.stem ||
			NormalizeEditedStem(reference.EditedStem()) == NormalizeEditedStem(item.stem) {
			n.files = append(n.files, item)
			return nil
		}
		if hasEditedMarker(item.path) {
			for _, sibling := range n.files {
				if !hasEditedMarker(sibling.path) {
					continue
				}
				if sibling.EditedStem() == item.stem ||
					NormalizeEditedStem(sibling.EditedStem()) == NormalizeEditedStem(item.stem) {
					n.files = append(n.files, item)
					return nil
				}
			}
		}
	}

	key, size := utf8.DecodeRuneInString(remaining)
	child, ok := n.children[key]
	if !ok {
		child = newGroupingNode()
		n.children[key] = child
	}
	rest := remaining[size:]

	/**********************************************************************************************
	** "_e" skip: IMG_E1234 belongs next to IMG_1234, not at its own stem. Probe the
	** location with the "e" dropped; on a bounce, fall through to the literal walk.
	**********************************************************************************************/
	if key == '_' && strings.HasPrefix(rest, "e") {
		if child.add(item, rest[1:], true) == nil {
			return nil
		}
	}

	/**********************************************************************************************
	** "_o" adjustment marker, AAE sidecars only. A remainder of exactly "_o" joins the
	** group already completed at this node; "_o<digits>" walks on with the "o" dropped, as
	** if the marker were not there.
	**********************************************************************************************/
	if key == '_' && strings.HasPrefix(rest, "o") && item.Ext() == ".aae" {
		tail := rest[1:]
		if tail == "" {
			if len(n.files) > 0 {
				n.files = append(n.files, item)
				return nil
			}
		} else if isAllDigits(tail) {
			return child.add(item, tail, maybeE)
		}
	}

	return child.add(item, rest, maybeE)
}

/**************************************************************************************************
** collect gathers the completed groups of the subtree, one per node holding files, children
** visited in sorted key order so output ordering is deterministic.
**
** @return [][]*Groupable - The groups, files in insertion order within each group
**************************************************************************************************/
func (n *groupingNode) collect() [][]*Groupable {
	var groups [][]*Groupable
	keys := make([]rune, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		groups = append(groups, n.children[key].collect()...)
	}
	if len(n.files) > 0 {
		groups = append(groups, n.files)
	}
	return groups
}

/**************************************************************************************************
** findNode walks the exact stem path and returns the node there, or nil when the path does
** not exist. Used by the root for the increment-suffix cross-check.
**
** @param stem - The exact stem path to look up
** @return *groupingNode - The node at that path, or nil
**************************************************************************************************/
func (n *groupingNode) findNode(stem string) *groupingNode {
	node := n
	for _, key := range stem {
		node = node.children[key]
		if node == nil {
			return nil
		}
	}
	return node
}

/**************************************************************************************************
** findFilesAtPath returns the files grouped at an exact stem path, or nil when the path
** does not exist or holds no files.
**
** @param stem - The exact stem path to look up
** @return []*Groupable - The files at that path, or nil
**************************************************************************************************/
func (n *groupingNode) findFilesAtPath(stem string) []*Groupable {
	node := n.findNode(stem)
	if node == nil || len(node.files) == 0 {
		return nil
	}
	return node.files
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
