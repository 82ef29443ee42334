package domain

// Bundle is the portable form of one record's latest state, shared by the container
// and mod-package formats.
type Bundle struct {
	Description  string
	Equipment    string
	Scale        string
	Manipulation string
	Files        []BundleFile
}

type BundleFile struct {
	GamePaths []string
	Hash      string
	// Path is the blob on disk when exporting. Decoders leave it empty.
	Path string
}

const ImportedEntryDescription = "Imported"
