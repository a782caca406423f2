package xcm

import (
	"fmt"

	"github.com/InvArch/invarch-bridge-service/gerror"
	"github.com/pkg/errors"
)

// Version is the XCM version tag of a versioned location.
type Version uint8

const (
	V2 Version = 2
	V3 Version = 3
	V4 Version = 4
)

// SCALE variant indexes of VersionedLocation / VersionedAssets.
const (
	scaleIndexV2 = 1
	scaleIndexV3 = 3
	scaleIndexV4 = 4
)

func (v Version) String() string {
	return fmt.Sprintf("V%d", uint8(v))
}

// ParseVersion parses a "V2".."V4" tag.
func ParseVersion(tag string) (Version, error) {
	switch tag {
	case "V2":
		return V2, nil
	case "V3":
		return V3, nil
	case "V4":
		return V4, nil
	}
	return 0, errors.Wrapf(gerror.ErrUnsupportedVersion, "version tag %q", tag)
}

func (v Version) scaleIndex() (byte, error) {
	switch v {
	case V2:
		return scaleIndexV2, nil
	case V3:
		return scaleIndexV3, nil
	case V4:
		return scaleIndexV4, nil
	}
	return 0, errors.Wrapf(gerror.ErrUnsupportedVersion, "version %d", uint8(v))
}

func versionFromScaleIndex(b byte) (Version, error) {
	switch b {
	case scaleIndexV2:
		return V2, nil
	case scaleIndexV3:
		return V3, nil
	case scaleIndexV4:
		return V4, nil
	}
	return 0, errors.Wrapf(gerror.ErrUnsupportedVersion, "scale variant %d", b)
}
