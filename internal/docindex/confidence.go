package docindex

// CalibrateConfidence scores how strongly a reference ties documentation
// to a symbol. Qualified mentions beat bare names, prose beats examples,
// examples beat comments.
func CalibrateConfidence(src Source, qualified bool) float64 {
	base := baseConfidence(src)
	if qualified {
		base += 0.15
	}
	return clamp(base, 0.1, 0.99)
}

func baseConfidence(src Source) float64 {
	switch src {
	case SourceDoc:
		return 0.7
	case SourceExample:
		return 0.6
	case SourceComment:
		return 0.5
	default:
		return 0.45
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
