package safe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestValidateSobel(t *testing.T) {
	assert.NoError(t, ValidateSobel(1, 0, 3))
	assert.NoError(t, ValidateSobel(2, 2, 3))
	assert.NoError(t, ValidateSobel(0, 2, 5))

	assert.Error(t, ValidateSobel(0, 0, 3))
	assert.Error(t, ValidateSobel(3, 0, 3))
	assert.Error(t, ValidateSobel(1, 0, 4))
	assert.Error(t, ValidateSobel(-1, 1, 3))
}

func TestValidateDimensionsAndType(t *testing.T) {
	assert.NoError(t, ValidateDimensions(640, 480, "test"))
	assert.Error(t, ValidateDimensions(0, 480, "test"))
	assert.Error(t, ValidateDimensions(40000, 10, "test"))

	assert.NoError(t, ValidateMatType(gocv.MatTypeCV16SC1, "test"))
	assert.NoError(t, ValidateMatType(gocv.MatTypeCV32FC1, "test"))
	assert.NoError(t, ValidateMatType(gocv.MatTypeCV64FC1, "test"))
	assert.Error(t, ValidateMatType(gocv.MatTypeCV8UC3, "test"))
	assert.Error(t, ValidateMatType(gocv.MatTypeCV16UC1, "test"))

	assert.Error(t, ValidateMatForOperation(nil, "test"))
}

func TestByteSize(t *testing.T) {
	assert.Equal(t, int64(110*110), ByteSize(110, 110, gocv.MatTypeCV8UC1))
	assert.Equal(t, int64(2*640*480), ByteSize(480, 640, gocv.MatTypeCV16SC1))
	assert.Equal(t, int64(4*640*480), ByteSize(480, 640, gocv.MatTypeCV32FC1))
}
