package target

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xjam3z/webscanner/internal/model"
)

// Detect inspects the scan input argument and classifies it into a
// TargetSpec. Classification rules:
//
//   - An existing file with a ".json" extension is an ASN JSON table.
//   - An existing file with list mode requested is a pre-built list.
//   - Anything else is a single host/CIDR/range string, passed to the
//     scanner verbatim.
//
// The extension check only applies to files that exist: a
// non-existent "foo.json" argument is treated as a single host.
//
// Detect validates the country-filter pairing rule before any file
// I/O happens: a filter with a non-JSON input is a configuration
// error, and list mode with a missing file is fatal rather than
// silently scanning the filename as a host.
func Detect(input string, listMode bool, countryFilter string) (model.TargetSpec, error) {
	info, err := os.Stat(input)
	exists := err == nil && !info.IsDir()

	if exists && filepath.Ext(input) == ".json" {
		return model.TargetSpec{
			Kind:          model.TargetASNJSON,
			Value:         input,
			CountryFilter: countryFilter,
		}, nil
	}

	if countryFilter != "" {
		return model.TargetSpec{}, ErrCountryFilterWithoutJSON
	}

	if listMode {
		if !exists {
			return model.TargetSpec{}, fmt.Errorf("%w: %s", ErrListFileNotFound, input)
		}
		return model.TargetSpec{Kind: model.TargetListFile, Value: input}, nil
	}

	return model.TargetSpec{Kind: model.TargetSingleHost, Value: input}, nil
}
