package scanner

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strings"
)

// RPM packages start with 0xED 0xAB 0xEE 0xDB, followed by the format
// version and a big-endian package type (0 binary, 1 source)
var rpmMagic = []byte{0xED, 0xAB, 0xEE, 0xDB}

const rpmLeadTypeOffset = 6

// DetectPackageType determines the package type based on the RPM lead and file extension
func DetectPackageType(path string) (PackageType, error) {
	// Open file
	f, err := os.Open(path)
	if err != nil {
		return TypeUnknown, err
	}
	defer f.Close()

	// The lead type field is all we need
	header := make([]byte, rpmLeadTypeOffset+2)
	n, err := io.ReadFull(f, header)
	if err != nil && n == 0 {
		return TypeUnknown, err
	}
	header = header[:n]

	if !bytes.HasPrefix(header, rpmMagic) {
		return TypeUnknown, nil
	}

	if len(header) == rpmLeadTypeOffset+2 && binary.BigEndian.Uint16(header[rpmLeadTypeOffset:]) == 1 {
		return TypeSourceRpm, nil
	}
	if strings.HasSuffix(path, ".src.rpm") {
		return TypeSourceRpm, nil
	}
	return TypeRpm, nil
}
