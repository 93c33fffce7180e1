package excerpt

// Limit hard-truncates a document to at most maxLength bytes at a clean
// boundary, independent of any match. maxLength <= 0 means unlimited.
func Limit(doc string, maxLength int) Result {
	if maxLength <= 0 || len(doc) <= maxLength {
		return verbatim(doc)
	}

	end := FindBoundary(doc, maxLength, Backward)
	return Result{
		Text: doc[:end] + Ellipsis,
		Meta: Meta{
			ContentTruncated: true,
			OriginalLength:   len(doc),
			SnippetStart:     0,
			SnippetEnd:       end,
			TruncationType:   TruncationLength,
		},
	}
}
