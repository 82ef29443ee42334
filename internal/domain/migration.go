package domain

// Layout is the on-disk shape of a record directory as found by the migration scan.
type Layout int

const (
	LayoutCurrent Layout = iota
	LayoutUnversioned
	LayoutLegacy
)

func (l Layout) String() string {
	switch l {
	case LayoutCurrent:
		return "current"
	case LayoutUnversioned:
		return "unversioned"
	case LayoutLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

type MigrationCandidate struct {
	Name   string
	Dir    string
	Layout Layout
	// Err is set when the directory could not be classified; it is left untouched.
	Err error
}

// LegacyMigration summarizes the conversion of one legacy directory.
type LegacyMigration struct {
	Name         string
	FilesHashed  int
	FilesMissing int
	GamePaths    int
}

const MigratedEntryDescription = "Migrated from legacy snapshot"
