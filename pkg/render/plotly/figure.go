package plotly

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/multilayer/pkg/multilayer"
	"github.com/matzehuels/multilayer/pkg/render/animation"
)

// Figure is the JSON document consumed by Plotly.newPlot and
// Plotly.addFrames.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames"`
}

// Trace is a scatter3d trace. Nil coordinates encode the null separators
// Plotly uses to break a line trace into segments.
type Trace struct {
	Type      string     `json:"type"`
	Mode      string     `json:"mode"`
	Name      string     `json:"name,omitempty"`
	X         []*float64 `json:"x"`
	Y         []*float64 `json:"y"`
	Z         []*float64 `json:"z"`
	Text      []string   `json:"text,omitempty"`
	HoverInfo string     `json:"hoverinfo,omitempty"`
	Marker    *Marker    `json:"marker,omitempty"`
	Line      *Line      `json:"line,omitempty"`
}

type Marker struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

type Line struct {
	Width int    `json:"width"`
	Color string `json:"color"`
}

// Frame is one animation step.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

type Layout struct {
	Title       Title        `json:"title"`
	ShowLegend  bool         `json:"showlegend"`
	Scene       Scene        `json:"scene"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
}

type Title struct {
	Text string `json:"text"`
}

type Scene struct {
	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
	ZAxis Axis `json:"zaxis"`
}

type Axis struct {
	Visible bool   `json:"visible"`
	Title   string `json:"title,omitempty"`
}

// UpdateMenu is a group of layout buttons.
type UpdateMenu struct {
	Type       string   `json:"type"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	XAnchor    string   `json:"xanchor"`
	YAnchor    string   `json:"yanchor"`
	Buttons    []Button `json:"buttons"`
}

// Button invokes a Plotly method with Args when clicked.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

const (
	nodeSize  = 5
	nodeColor = "blue"
	edgeWidth = 2
	edgeColor = "black"
)

// DefaultAnimationSpeed is the frame duration in milliseconds.
const DefaultAnimationSpeed = 100

// Options configures the figure.
type Options struct {
	Title string

	// AnimationSpeed is the duration of one frame in milliseconds.
	AnimationSpeed int

	// HideAxes starts the scene with the axes hidden.
	HideAxes bool
}

// NewFigure builds the animated 3D figure of res. The initial data shows
// every node and every edge; frame k shows every node and the first k edges
// of the reveal order.
func NewFigure(res *multilayer.Result, opts Options) *Figure {
	if opts.AnimationSpeed <= 0 {
		opts.AnimationSpeed = DefaultAnimationSpeed
	}

	nodes := nodeTrace(res)
	frames := animation.Frames(res.Edges)

	fig := &Figure{
		Data:   []Trace{nodes, edgeTrace(res, res.Edges)},
		Layout: newLayout(opts),
		Frames: make([]Frame, len(frames)),
	}
	for i, f := range frames {
		fig.Frames[i] = Frame{
			Name: strconv.Itoa(f.Index),
			Data: []Trace{nodes, edgeTrace(res, f.Edges)},
		}
	}
	return fig
}

func nodeTrace(res *multilayer.Result) Trace {
	n := len(res.Positions)
	t := Trace{
		Type:      "scatter3d",
		Mode:      "markers",
		Name:      "nodes",
		X:         make([]*float64, n),
		Y:         make([]*float64, n),
		Z:         make([]*float64, n),
		Text:      make([]string, n),
		HoverInfo: "text",
		Marker:    &Marker{Size: nodeSize, Color: nodeColor},
	}
	for _, span := range res.Layers {
		for _, id := range span.Nodes() {
			p := res.Positions[id]
			t.X[id], t.Y[id], t.Z[id] = ptr(p.X), ptr(p.Y), ptr(p.Z)
			t.Text[id] = fmt.Sprintf("node %d (layer %d)", id, span.Layer)
		}
	}
	return t
}

func edgeTrace(res *multilayer.Result, edges []multilayer.Edge) Trace {
	t := Trace{
		Type:      "scatter3d",
		Mode:      "lines",
		Name:      "edges",
		X:         make([]*float64, 0, 3*len(edges)),
		Y:         make([]*float64, 0, 3*len(edges)),
		Z:         make([]*float64, 0, 3*len(edges)),
		HoverInfo: "none",
		Line:      &Line{Width: edgeWidth, Color: edgeColor},
	}
	for _, e := range edges {
		a, b := res.Positions[e.From], res.Positions[e.To]
		t.X = append(t.X, ptr(a.X), ptr(b.X), nil)
		t.Y = append(t.Y, ptr(a.Y), ptr(b.Y), nil)
		t.Z = append(t.Z, ptr(a.Z), ptr(b.Z), nil)
	}
	return t
}

func newLayout(opts Options) Layout {
	axis := Axis{Visible: !opts.HideAxes}
	return Layout{
		Title:      Title{Text: opts.Title},
		ShowLegend: false,
		Scene: Scene{
			XAxis: axis,
			YAxis: axis,
			ZAxis: Axis{Visible: axis.Visible, Title: "layer"},
		},
		UpdateMenus: []UpdateMenu{{
			Type:    "buttons",
			X:       0.1,
			Y:       0,
			XAnchor: "right",
			YAnchor: "bottom",
			Buttons: []Button{
				{
					Label:  "Play",
					Method: "animate",
					Args: []any{nil, map[string]any{
						"frame":       map[string]any{"duration": opts.AnimationSpeed, "redraw": true},
						"fromcurrent": true,
					}},
				},
				axesButton("Hide Axes", false),
				axesButton("Show Axes", true),
			},
		}},
	}
}

func axesButton(label string, visible bool) Button {
	return Button{
		Label:  label,
		Method: "relayout",
		Args: []any{map[string]any{
			"scene.xaxis.visible": visible,
			"scene.yaxis.visible": visible,
			"scene.zaxis.visible": visible,
		}},
	}
}

func ptr(f float64) *float64 { return &f }
