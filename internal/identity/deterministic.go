package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// NodeUUID keys a page node by parent and slug so seed and migration runs
// stay idempotent across executions.
func NodeUUID(parentID uuid.UUID, slug string) uuid.UUID {
	return UUID("travelcms:node:" + parentID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// RootNodeUUID keys a root node (no parent) by slug.
func RootNodeUUID(slug string) uuid.UUID {
	return UUID("travelcms:node:root:" + strings.ToLower(strings.TrimSpace(slug)))
}

// LinkUUID keys an article/destination relation.
func LinkUUID(articleID, destinationID uuid.UUID) uuid.UUID {
	return UUID("travelcms:link:" + articleID.String() + ":" + destinationID.String())
}
