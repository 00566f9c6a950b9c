package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return nil
}

func ValidateDimensions(width, height int, operation string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d for operation: %s", width, height, operation)
	}

	if width > 32768 || height > 32768 {
		return fmt.Errorf("dimensions %dx%d exceed maximum size for operation: %s", width, height, operation)
	}

	return nil
}

// ValidateMatType accepts the single-channel output depths a derivative
// filter can write from 8-bit input.
func ValidateMatType(matType gocv.MatType, operation string) error {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV16SC1:
		return nil
	case gocv.MatTypeCV32FC1, gocv.MatTypeCV64FC1:
		return nil
	default:
		return fmt.Errorf("unsupported MatType %d for operation: %s", int(matType), operation)
	}
}

// ValidateSobel checks the derivative orders against the aperture size.
func ValidateSobel(dx, dy, ksize int) error {
	switch ksize {
	case 1, 3, 5, 7:
	default:
		return fmt.Errorf("unsupported Sobel ksize %d", ksize)
	}

	if dx < 0 || dy < 0 || dx+dy == 0 {
		return fmt.Errorf("invalid Sobel orders (%d,%d)", dx, dy)
	}

	if dx >= ksize || dy >= ksize {
		return fmt.Errorf("Sobel orders (%d,%d) need ksize > %d", dx, dy, max(dx, dy))
	}

	return nil
}
