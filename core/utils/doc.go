// Package utils provides common utility functions for the bom-merger application.
// It holds the lenient numeric and boolean conversions used when reading spreadsheet
// cells and request parameters, where bad input must degrade to "missing" rather than fail.
package utils
