package plotly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
)

// DefaultScriptURL is the CDN copy of the bundle, used when none is embedded.
const DefaultScriptURL = "https://cdn.plot.ly/plotly-" + BundleVersion + ".min.js"

// HTMLOptions configures [RenderHTML].
type HTMLOptions struct {
	// Title is the document title; it defaults to the figure title.
	Title string

	// ScriptURL references plotly.js by URL instead of inlining the embedded
	// bundle. Such documents need network access to display.
	ScriptURL string
}

var page = template.Must(template.New("figure").Parse(pageTemplate))

// RenderHTML renders fig as a standalone HTML page that plots the figure and
// registers its frames. The animation starts paused.
//
// plotly.js is inlined unless opts.ScriptURL is set or no bundle is embedded
// (see [Bundled]).
func RenderHTML(fig *Figure, opts HTMLOptions) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = fig.Layout.Title.Text
	}
	var script template.JS
	if opts.ScriptURL == "" {
		if Bundled() {
			script = template.JS(bundle)
		} else {
			opts.ScriptURL = DefaultScriptURL
		}
	}

	figJSON, err := json.Marshal(fig)
	if err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}

	data := struct {
		Title     string
		ScriptURL string
		Script    template.JS
		Figure    template.JS
	}{
		Title:     opts.Title,
		ScriptURL: opts.ScriptURL,
		Script:    script,
		Figure:    template.JS(figJSON),
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
{{- if .ScriptURL}}
    <script src="{{.ScriptURL}}" charset="utf-8"></script>
{{- else}}
    <script>{{.Script}}</script>
{{- end}}
    <style>
        html, body { margin: 0; height: 100%; }
        #graph { width: 100vw; height: 100vh; }
    </style>
</head>
<body>
    <div id="graph"></div>
    <script>
        const figure = {{.Figure}};
        Plotly.newPlot("graph", figure.data, figure.layout, {responsive: true})
            .then(function () { return Plotly.addFrames("graph", figure.frames); });
    </script>
</body>
</html>
`
