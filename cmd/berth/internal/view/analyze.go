package view

import (
	"encoding/json"
	"time"

	"github.com/fatih/color"
)

type AnalyzeView interface {
	Render(result AnalyzeResult)
}

// AnalyzeResult is the completeness classification of one declaration.
type AnalyzeResult struct {
	File               string   `json:"file"`
	Total              int      `json:"totalServices"`
	Applications       []string `json:"appServices"`
	Infrastructure     []string `json:"infrastructureServices"`
	InfrastructureOnly bool     `json:"isInfrastructureOnly"`
}

// Human view implementation.

type analyzeHumanView struct {
	*HumanView
}

func newAnalyzeHumanView(hv *HumanView) *analyzeHumanView {
	return &analyzeHumanView{HumanView: hv}
}

func (v *analyzeHumanView) Render(result AnalyzeResult) {
	v.Printf("%s: %d services (%d app, %d infrastructure)\n",
		result.File, result.Total, len(result.Applications), len(result.Infrastructure))
	for _, name := range result.Applications {
		v.Println("  app:  ", name)
	}
	for _, name := range result.Infrastructure {
		v.Println("  infra:", name)
	}
	if result.InfrastructureOnly {
		v.Println(color.YellowString("Warning:"),
			"declaration contains only infrastructure services and no deployable application")
	}
}

// JSON view implementation.

type analyzeJSONView struct {
	*JSONView
}

func newAnalyzeJSONView(jv *JSONView) *analyzeJSONView {
	return &analyzeJSONView{JSONView: jv}
}

type analyzeJSONResult struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AnalyzeResult
}

func (v *analyzeJSONView) Render(result AnalyzeResult) {
	out := analyzeJSONResult{
		Type:          "analyze",
		Timestamp:     time.Now(),
		AnalyzeResult: result,
	}

	if data, err := json.Marshal(out); err == nil {
		v.Println(string(data))
	}
}

func NewAnalyzeView(v Viewer) AnalyzeView {
	switch vt := v.(type) {
	case *HumanView:
		return newAnalyzeHumanView(vt)
	case *JSONView:
		return newAnalyzeJSONView(vt)
	default:
		panic("unknown view type")
	}
}
