package acpi

// Creator identifies the software that generated a table. It is written into
// every table header at offsets 28 (ID) and 32 (Revision).
type Creator struct {
	ID       [4]byte
	Revision uint32
}

// DefaultCreator is the identity sdtgen stamps into tables it builds.
var DefaultCreator = Creator{
	ID:       [4]byte{'S', 'D', 'T', 'G'},
	Revision: 1,
}
