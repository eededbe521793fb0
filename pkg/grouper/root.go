package grouper

/**************************************************************************************************
** Root owns the grouping trie and layers on the one cross-cutting rule the trie cannot see
** locally: an edited file whose increment suffix sits in a different position than its
** original's ("img_1234_edited (1)" vs "img_1234 (1)"), which means the two never share a
** trie path at all. One Root is built per grouping call and discarded afterwards.
**************************************************************************************************/
type Root struct {
	tree *groupingNode
}

// NewRoot returns an empty grouping tree.
func NewRoot() *Root {
	return &Root{tree: newGroupingNode()}
}

/**************************************************************************************************
** Add places one item. For an edited stem carrying an increment suffix, each candidate
** original location is looked up directly; a candidate only counts when a file already
** there confirms the correspondence through its normalized edited stem, which guards
** against coincidental stem prefixes on the "e"-stripped candidate. Everything else goes
** through the standard trie insertion.
**
** @param item - The file to place
**************************************************************************************************/
func (r *Root) Add(item *Groupable) {
	for _, candidate := range OriginalStemsForEditedWithIncrement(item.Stem()) {
		node := r.tree.findNode(candidate)
		if node == nil || len(node.files) == 0 {
			continue
		}
		for _, existing := range node.files {
			if NormalizeEditedStem(existing.EditedStem()) == NormalizeEditedStem(item.Stem()) {
				node.files = append(node.files, item)
				return
			}
		}
	}
	r.tree.add(item, item.Stem(), false)
}

/**************************************************************************************************
** Collect returns the completed groups in deterministic trie order.
**
** @return [][]*Groupable - One slice per logical group
**************************************************************************************************/
func (r *Root) Collect() [][]*Groupable {
	return r.tree.collect()
}
