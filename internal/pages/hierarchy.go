package pages

// allowedChildren is the static compatibility table for the tree. A kind not
// present (or mapped to an empty slice) accepts no children. Only Home may
// sit at the root.
var allowedChildren = map[Kind][]Kind{
	KindHome:              {KindSimplePage, KindGuidesIndex, KindDestinationsIndex},
	KindGuidesIndex:       {KindCategory},
	KindCategory:          {KindArticle},
	KindDestinationsIndex: {KindCountry},
	KindCountry:           {KindDestination},
	KindDestination:       {KindDestinationSection},
}

var allKinds = []Kind{
	KindHome, KindSimplePage, KindGuidesIndex, KindCategory, KindArticle,
	KindDestinationsIndex, KindCountry, KindDestination, KindDestinationSection,
}

// KnownKind reports whether kind is part of the variant table.
func KnownKind(kind Kind) bool {
	for _, k := range allKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// AllowedChildKinds returns the child kinds a parent accepts.
func AllowedChildKinds(parent Kind) []Kind {
	children := allowedChildren[parent]
	out := make([]Kind, len(children))
	copy(out, children)
	return out
}

// AllowedParentKinds returns the parent kinds that accept the child.
func AllowedParentKinds(child Kind) []Kind {
	var out []Kind
	for _, parent := range allKinds {
		for _, allowed := range allowedChildren[parent] {
			if allowed == child {
				out = append(out, parent)
			}
		}
	}
	return out
}

// CanParent reports whether child may be created or moved under parent.
func CanParent(parent, child Kind) bool {
	for _, allowed := range allowedChildren[parent] {
		if allowed == child {
			return true
		}
	}
	return false
}

// IsRootKind reports whether the kind may live without a parent.
func IsRootKind(kind Kind) bool {
	return kind == KindHome
}

// ValidateHierarchy enforces the compatibility table at creation/move time.
// A nil parentKind means the node is being placed at the tree root.
func ValidateHierarchy(parentKind *Kind, childKind Kind) error {
	if !KnownKind(childKind) {
		return &InvalidHierarchyError{Child: childKind}
	}
	if parentKind == nil {
		if IsRootKind(childKind) {
			return nil
		}
		return &InvalidHierarchyError{Child: childKind}
	}
	if !KnownKind(*parentKind) || !CanParent(*parentKind, childKind) {
		return &InvalidHierarchyError{Parent: *parentKind, Child: childKind}
	}
	return nil
}
