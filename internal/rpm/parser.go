// Package rpm reads package identity from RPM file headers.
package rpm

import (
	"fmt"
	"os"

	"github.com/ralt/rdbdiff/internal/models"
	"github.com/sassoftware/go-rpmutils"
)

// ParsePackage parses an RPM file and extracts the fields a listing record needs
func ParsePackage(path string) (*models.RawRecord, error) {
	// Open RPM file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Read RPM header
	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read RPM: %w", err)
	}

	return &models.RawRecord{
		Name:      getStringTag(rpm, rpmutils.NAME),
		Epoch:     int(getIntTag(rpm, rpmutils.EPOCH)),
		Version:   getStringTag(rpm, rpmutils.VERSION),
		Release:   getStringTag(rpm, rpmutils.RELEASE),
		Arch:      getStringTag(rpm, rpmutils.ARCH),
		BuildTime: getIntTag(rpm, rpmutils.BUILDTIME),
		Source:    getStringTag(rpm, rpmutils.SOURCERPM),
	}, nil
}

// getStringTag safely gets a string tag from RPM
func getStringTag(rpm *rpmutils.Rpm, tag int) string {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return ""
	}
	return stringValue(val)
}

// getIntTag safely gets an integer tag from RPM, 0 when absent
func getIntTag(rpm *rpmutils.Rpm, tag int) int64 {
	val, err := rpm.Header.Get(tag)
	if err != nil {
		return 0
	}
	return intValue(val)
}

func stringValue(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case nil:
	default:
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// intValue handles the scalar and array forms integer tags come back in
func intValue(val interface{}) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint32:
		return int64(v)
	case []int:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []int32:
		if len(v) > 0 {
			return int64(v[0])
		}
	case []int64:
		if len(v) > 0 {
			return v[0]
		}
	case []uint32:
		if len(v) > 0 {
			return int64(v[0])
		}
	}
	return 0
}
