package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Size is an image extent in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Named sizes used by the OpenCV perf suites.
var (
	SizeODD  = Size{Width: 127, Height: 61}
	SizeQVGA = Size{Width: 320, Height: 240}
	SizeVGA  = Size{Width: 640, Height: 480}
)

// Depth is an output depth tag such as CV_16SC1.
type Depth string

const (
	Depth8U  Depth = "CV_8UC1"
	Depth16U Depth = "CV_16UC1"
	Depth16S Depth = "CV_16SC1"
	Depth32F Depth = "CV_32FC1"
	Depth64F Depth = "CV_64FC1"
)

var depthPattern = regexp.MustCompile(`^CV_[0-9]+[FSUfsu]C1$`)

// WellFormed reports whether d has the CV_<bits><type>C1 shape.
func (d Depth) WellFormed() bool {
	return depthPattern.MatchString(string(d))
}

// Order is a derivative order pair.
type Order struct {
	Dx int
	Dy int
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d)", o.Dx, o.Dy)
}

// BorderTag is a symbolic OpenCV border mode name.
type BorderTag string

const (
	BorderConstant    BorderTag = "BORDER_CONSTANT"
	BorderReplicate   BorderTag = "BORDER_REPLICATE"
	BorderReflect     BorderTag = "BORDER_REFLECT"
	BorderWrap        BorderTag = "BORDER_WRAP"
	BorderReflect101  BorderTag = "BORDER_REFLECT101"
	BorderReflect_101 BorderTag = "BORDER_REFLECT_101"
	BorderTransparent BorderTag = "BORDER_TRANSPARENT"
	BorderDefault     BorderTag = "BORDER_DEFAULT"
	BorderIsolated    BorderTag = "BORDER_ISOLATED"
)

// BorderFlag is the numeric OpenCV border value.
type BorderFlag int

var borderFlags = map[BorderTag]BorderFlag{
	BorderConstant:    0,
	BorderReplicate:   1,
	BorderReflect:     2,
	BorderWrap:        3,
	BorderReflect101:  4,
	BorderReflect_101: 4,
	BorderTransparent: 5,
	BorderDefault:     4,
	BorderIsolated:    16,
}

// Flag returns the numeric value of t.
func (t BorderTag) Flag() (BorderFlag, bool) {
	f, ok := borderFlags[t]
	return f, ok
}

// BorderSeparator joins the tags of a compound border.
const BorderSeparator = "|"

// Border is one or two border tags and their combined flag.
type Border struct {
	Tags []BorderTag
	Flag BorderFlag
}

// ParseBorder resolves a token like "BORDER_REPLICATE|BORDER_ISOLATED".
func ParseBorder(token string) (Border, error) {
	parts := strings.Split(token, BorderSeparator)
	b := Border{Tags: make([]BorderTag, 0, len(parts))}
	for _, part := range parts {
		tag := BorderTag(part)
		flag, ok := tag.Flag()
		if !ok {
			return Border{}, errors.Errorf("unknown border tag %q", part)
		}
		b.Tags = append(b.Tags, tag)
		b.Flag |= flag
	}
	return b, nil
}

// Compound reports whether the border ORs two behaviours together.
func (b Border) Compound() bool {
	return len(b.Tags) > 1
}

func (b Border) String() string {
	parts := make([]string, len(b.Tags))
	for i, t := range b.Tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, BorderSeparator)
}

// Equal compares tags in order. The flag is derived and not compared.
func (b Border) Equal(other Border) bool {
	if len(b.Tags) != len(other.Tags) {
		return false
	}
	for i := range b.Tags {
		if b.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
