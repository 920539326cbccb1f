package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTitleRequired     = errors.New("pages: title is required")
	ErrKindRequired      = errors.New("pages: node kind is required")
	ErrParentRequired    = errors.New("pages: parent is required for non-root kinds")
	ErrInvalidHierarchy  = errors.New("pages: parent/child kind mismatch")
	ErrNodeNotFound      = errors.New("pages: node not found")
	ErrNotAnArticle      = errors.New("pages: node is not an article")
	ErrNotADestination   = errors.New("pages: node is not a destination")
	ErrLinkExists        = errors.New("pages: article already linked to destination")
	ErrRepositoryMissing = errors.New("pages: repository is required")
)

// InvalidHierarchyError carries the offending kinds of a rejected placement.
type InvalidHierarchyError struct {
	Parent Kind
	Child  Kind
}

func (e *InvalidHierarchyError) Error() string {
	if e == nil {
		return ErrInvalidHierarchy.Error()
	}
	if e.Parent == "" {
		return fmt.Sprintf("%s: %s cannot be a root node", ErrInvalidHierarchy.Error(), e.Child)
	}
	return fmt.Sprintf("%s: %s under %s", ErrInvalidHierarchy.Error(), e.Child, e.Parent)
}

func (e *InvalidHierarchyError) Unwrap() error {
	return ErrInvalidHierarchy
}

// NodeNotFoundError reports an unresolvable id, slug, or path. It is the
// standard "not found" outcome, not a retriable fault.
type NodeNotFoundError struct {
	Key string
}

func (e *NodeNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrNodeNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrNodeNotFound.Error(), e.Key)
}

func (e *NodeNotFoundError) Unwrap() error {
	return ErrNodeNotFound
}

// IsNotFound reports whether err is any flavour of node-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
