// Package assets bundles the default route document served when no external GeoJSON source is configured.
package assets

import "embed"

const RoutesFile = "routes.geojson"

//go:embed routes.geojson
var FS embed.FS
