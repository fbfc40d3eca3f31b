package extract

// extractDOC recovers text from legacy Word files through the generic
// content-sniffing strategy; its OLE2 branch handles the compound file
// layout. Legacy files expose no portable properties, so metadata stays
// empty.
func (e *Extractor) extractDOC(path string) (Result, error) {
	result, err := e.extractGeneric(path)
	if err != nil {
		return Result{}, err
	}
	result.Metadata = map[string]string{}
	return result, nil
}
