package view

import (
	"encoding/json"
	"time"

	"github.com/fatih/color"
)

type ValidateView interface {
	Render(result ValidateResult)
}

// ValidateResult is the outcome of validating a set of declaration files.
type ValidateResult struct {
	Files []ValidateFile
}

// ValidateFile is one file's outcome: a load or parse error, a list of
// policy violations, or neither when the declaration is clean.
type ValidateFile struct {
	File       string   `json:"file"`
	Error      string   `json:"error,omitempty"`
	Violations []string `json:"violations,omitempty"`
}

func (f ValidateFile) Clean() bool {
	return f.Error == "" && len(f.Violations) == 0
}

func (r ValidateResult) HasErrors() bool {
	for _, f := range r.Files {
		if !f.Clean() {
			return true
		}
	}
	return false
}

// Human view implementation.

type validateHumanView struct {
	*HumanView
}

func newValidateHumanView(hv *HumanView) *validateHumanView {
	return &validateHumanView{HumanView: hv}
}

func (v *validateHumanView) Render(result ValidateResult) {
	for _, f := range result.Files {
		switch {
		case f.Error != "":
			v.Println(color.RGB(229, 50, 50).Sprint("Error!"), f.File+":", f.Error)
		case len(f.Violations) > 0:
			v.Println(color.RGB(229, 50, 50).Sprint("Invalid!"), f.File+":")
			for _, m := range f.Violations {
				v.Println("  -", m)
			}
		default:
			v.Println(color.RGB(24, 160, 133).Sprint("Valid!"), f.File)
		}
	}
}

// JSON view implementation.

type validateJSONView struct {
	*JSONView
}

func newValidateJSONView(jv *JSONView) *validateJSONView {
	return &validateJSONView{JSONView: jv}
}

type validateJSONResult struct {
	Type      string         `json:"type"`
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Files     []ValidateFile `json:"files"`
}

func (v *validateJSONView) Render(result ValidateResult) {
	out := validateJSONResult{
		Type:      "validate",
		Timestamp: time.Now(),
		Files:     result.Files,
	}

	if result.HasErrors() {
		out.Status = "error"
	} else {
		out.Status = "success"
	}

	if data, err := json.Marshal(out); err == nil {
		v.Println(string(data))
	}
}

func NewValidateView(v Viewer) ValidateView {
	switch vt := v.(type) {
	case *HumanView:
		return newValidateHumanView(vt)
	case *JSONView:
		return newValidateJSONView(vt)
	default:
		panic("unknown view type")
	}
}
