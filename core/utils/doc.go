// Package utils provides small formatting helpers shared by the feature packages:
// relative age strings for sync and price freshness, and catalog name casing.
package utils
