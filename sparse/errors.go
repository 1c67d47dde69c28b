package sparse

import "errors"

var (
	// ErrIndexOutOfRange is returned when a row or column lies outside the matrix.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrDimension is returned for invalid shapes or mismatched operands.
	ErrDimension = errors.New("sparse: invalid dimension")

	// ErrSingular is returned when elimination meets a zero pivot.
	ErrSingular = errors.New("sparse: matrix is singular")

	// ErrNotFactored is returned when solving with an incomplete factorization.
	ErrNotFactored = errors.New("sparse: matrix is not factored")

	// ErrComplex is returned when a real-only operation is asked of a complex matrix.
	ErrComplex = errors.New("sparse: complex matrix not supported")
)
