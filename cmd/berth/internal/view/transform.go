package view

import (
	"encoding/json"
	"time"

	"github.com/fatih/color"
)

type TransformView interface {
	Render(result TransformResult)
}

// PortAssignment is one external-port assignment, mirrored from the
// pipeline for rendering.
type PortAssignment struct {
	Service  string `json:"service"`
	Internal int    `json:"internal"`
	External int    `json:"external"`
	Protocol string `json:"protocol"`
}

// TransformResult is one file's successful pipeline run.
type TransformResult struct {
	File     string           `json:"file"`
	YAML     string           `json:"yaml"`
	Services []string         `json:"services"`
	Ports    []PortAssignment `json:"portMappings"`
	Written  bool             `json:"written,omitempty"`
}

// Human view implementation.

type transformHumanView struct {
	*HumanView
}

func newTransformHumanView(hv *HumanView) *transformHumanView {
	return &transformHumanView{HumanView: hv}
}

// Render prints the confined YAML followed by the port assignments as
// comment lines, so the whole output stays one valid YAML document and can
// be piped into a file as-is.
func (v *transformHumanView) Render(result TransformResult) {
	if result.Written {
		v.Println(color.RGB(24, 160, 133).Sprint("Confined!"), result.File, "rewritten in place")
	} else {
		v.Printf("%s", result.YAML)
	}
	for _, p := range result.Ports {
		v.Printf("# %s: %d/%s -> %d\n", p.Service, p.Internal, p.Protocol, p.External)
	}
}

// JSON view implementation.

type transformJSONView struct {
	*JSONView
}

func newTransformJSONView(jv *JSONView) *transformJSONView {
	return &transformJSONView{JSONView: jv}
}

type transformJSONResult struct {
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	TransformResult
}

func (v *transformJSONView) Render(result TransformResult) {
	out := transformJSONResult{
		Type:            "transform",
		Status:          "success",
		Timestamp:       time.Now(),
		TransformResult: result,
	}

	if data, err := json.Marshal(out); err == nil {
		v.Println(string(data))
	}
}

func NewTransformView(v Viewer) TransformView {
	switch vt := v.(type) {
	case *HumanView:
		return newTransformHumanView(vt)
	case *JSONView:
		return newTransformJSONView(vt)
	default:
		panic("unknown view type")
	}
}
