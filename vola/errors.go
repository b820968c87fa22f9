package vola

// Error is the package-scoped error type for vola-specific failures, in the
// same style as the teacher corpus's per-package Error string types
// (bzip2.Error, flate.Error, xflate/meta.Error).
type Error string

func (e Error) Error() string { return "vola: " + string(e) }

// Error kinds from spec.md §7. Each sentinel below maps to exactly one of
// these four conceptual kinds; callers that need to distinguish a corrupt
// file from a programmer bug can compare against the sentinels directly with
// errors.Is.
var (
	// InvalidArgument: depth out of range, payload too wide, coordinate out
	// of box, negative nbits, malformed caller-supplied shapes.
	ErrBadDepth        error = Error("depth out of range [1, 5]")
	ErrBadNBits        error = Error("nbits out of range [0, 8]")
	ErrPayloadTooWide  error = Error("payload exceeds nbits capacity")
	ErrCoordOutOfRange error = Error("coordinate out of bounding box")
	ErrShapeMismatch   error = Error("points and payloads have different lengths")

	// InvalidFormat: bad header, mode, or truncated/inconsistent level data.
	ErrBadHeaderSize error = Error("invalid header size")
	ErrBadVersion    error = Error("unsupported version")
	ErrBadMode       error = Error("invalid mode")
	ErrCorrupt       error = Error("corrupt or truncated vola stream")

	// EmptyInput: no points survived filtering, or the tree's root word is
	// unset. The writer rejects this before emitting any bytes.
	ErrEmptyInput error = Error("no voxels to write")
)

// Io errors are not wrapped: callers see the underlying io.Reader/io.Writer
// error directly, as the teacher corpus does throughout (e.g. bzip2.Writer.flush
// returns the *os.File error from the underlying io.Writer unchanged).
