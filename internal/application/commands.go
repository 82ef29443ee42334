package application

type CaptureRequest struct {
	Slot int
	// As forces the record name instead of locating the record by source identity.
	As          string
	Description string
}

type ApplyRequest struct {
	Record string
	Slot   int
	// EquipmentEntry and ScaleEntry select a history entry; nil means the latest.
	EquipmentEntry *int
	ScaleEntry     *int
	// MergeCollection overrides SessionOptions.MergeCollection when set.
	MergeCollection string
}

type SessionOptions struct {
	// DisableAutomaticRevert exempts primary-actor sessions from the revert that
	// follows the special viewing mode.
	DisableAutomaticRevert bool
	// MergeCollection names a collection whose files are layered over every apply.
	MergeCollection string
}

type MigrationOptions struct {
	BackupDir string
	Workers   int
}
