package domain

// Row is one normalized line of a catalog export. A nil field is absent;
// each source's own missing-value marker is turned into nil before a Row is built.
type Row struct {
	Source Source
	Line   int // 1-based line in the export, for diagnostics

	Title     *string
	Author    *string
	ISBN      *string // raw identifier, see ExtractKey
	Rating    *string
	Format    *string
	DateRead  *string
	Tags      *string
	Status    *string
	ReadCount *string
	Owned     *string
}
