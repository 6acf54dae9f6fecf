package frame

// CleanNames returns a new frame with column names passed through clean,
// which maps a transformed name to its bare source variable. Two guards keep
// the rename honest:
//
//   - a rename is skipped when the bare name already belongs to a different
//     column of the original frame, and
//   - when two transforms reduce to the same bare name, only the first
//     occurrence survives.
func (f *Frame) CleanNames(clean func(string) (string, bool)) *Frame {
	original := make(map[string]struct{}, f.NumCols())
	for _, c := range f.cols {
		original[c.Name] = struct{}{}
	}

	out := New()
	for _, c := range f.cols {
		name := c.Name
		if cleaned, ok := clean(c.Name); ok {
			if _, taken := original[cleaned]; !taken {
				name = cleaned
			}
		}
		if _, dup := out.Column(name); dup {
			continue
		}
		_ = out.Add(name, c.Values)
	}
	return out
}
