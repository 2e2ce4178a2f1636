package plotly

import (
	"embed"
)

//go:generate curl -sSfL -o assets/plotly.min.js https://cdn.plot.ly/plotly-2.35.2.min.js

// BundleVersion is the Plotly release that is inlined and referenced.
const BundleVersion = "2.35.2"

//go:embed assets
var assets embed.FS

// bundle is the inlined plotly.js source; empty when the asset was not
// generated before the build.
var bundle = loadBundle()

func loadBundle() []byte {
	b, err := assets.ReadFile("assets/plotly.min.js")
	if err != nil {
		return nil
	}
	return b
}

// Bundled reports whether rendered documents embed plotly.js. When false,
// [RenderHTML] falls back to [DefaultScriptURL].
func Bundled() bool {
	return len(bundle) > 0
}
