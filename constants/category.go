package constants

// DocumentCategory is the subject-matter classification of a report,
// derived once from keyword frequency and immutable for the run.
type DocumentCategory string

// Stable values (these exact strings appear in artifacts).
const (
	CategoryLaboratory DocumentCategory = "lab"
	CategoryImaging    DocumentCategory = "imaging"
	CategoryMixed      DocumentCategory = "mixed"
)

// UsesPatternExtraction reports whether the regex extractor runs for
// this category in addition to generative extraction.
func (c DocumentCategory) UsesPatternExtraction() bool {
	return c == CategoryImaging || c == CategoryMixed
}
