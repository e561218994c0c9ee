package ui

// AppMode represents what currently receives input: the catalog table or a detail overlay.
type AppMode int

const (
	ModeCatalog AppMode = iota
	ModeDetail
)

func (m AppMode) String() string {
	switch m {
	case ModeCatalog:
		return "Catalog"
	case ModeDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
