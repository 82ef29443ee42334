package domain

import "errors"

var (
	ErrRecordNotFound          = errors.New("snapshot record not found")
	ErrRecordExists            = errors.New("snapshot record already exists")
	ErrEntryNotFound           = errors.New("history entry not found")
	ErrActorNotFound           = errors.New("actor not found")
	ErrBlobMissing             = errors.New("blob missing")
	ErrNothingToApply          = errors.New("nothing to apply")
	ErrNoAppearanceData        = errors.New("no appearance data")
	ErrMalformedRecord         = errors.New("malformed snapshot record")
	ErrNeedsMigration          = errors.New("snapshot record uses a legacy layout; run migrate first")
	ErrBackupFailed            = errors.New("migration backup failed")
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	ErrInvalidContainer        = errors.New("invalid snapshot container")
)
