package domain

// FileBinding is one piece of content bound to an actor, aliased by every game path
// in GamePaths.
type FileBinding struct {
	GamePaths []string
	Hash      string
}

// Appearance is an in-memory capture before it is merged into a record. Scale holds
// the raw profile as returned by the bone-scaling service.
type Appearance struct {
	Equipment    string
	Scale        string
	Manipulation string
	Files        []FileBinding
}

func (a Appearance) IsEmpty() bool {
	return a.Equipment == "" && a.Scale == "" && a.Manipulation == "" && len(a.Files) == 0
}
