package jsonapiv

// Severity expresses how an enforcement finding is treated during decoding.
type Severity int

const (
	SeverityIgnore Severity = iota
	SeverityWarn
	SeverityError
)

// ParseSeverity maps "ignore", "warn" and "error" to a Severity. Unknown
// names map to SeverityError.
func ParseSeverity(s string) Severity {
	switch s {
	case "ignore":
		return SeverityIgnore
	case "warn":
		return SeverityWarn
	default:
		return SeverityError
	}
}

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// OnDuplicateKey controls duplicate member names. JSON:API forbids them;
	// DefaultDecodeOpt rejects them.
	OnDuplicateKey Severity
	MaxDepth       int   // 0 disables the check.
	MaxBytes       int64 // 0 disables the check.
	// Warnings receives findings reported with SeverityWarn.
	Warnings func(Error)
}

// DefaultDecodeOpt is the recommended setting for request bodies.
func DefaultDecodeOpt() DecodeOpt {
	return DecodeOpt{OnDuplicateKey: SeverityError, MaxDepth: 64}
}
