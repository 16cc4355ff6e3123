package chunks

// Split cuts a slice into consecutive chunks of at most size elements.
// The lookup endpoints accept 100 IDs per call, so collectors feed them
// through this.
func Split[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	var out [][]T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
