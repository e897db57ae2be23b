package report

import (
	"encoding/json"
	"io"

	"github.com/quadlens/quadlens/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes the reports' findings as SARIF 2.1.0.
func WriteSARIF(w io.Writer, version string, reports []*types.Report) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "quadlens", Version: version}},
	}
	for _, r := range reports {
		for _, f := range r.AllFindings() {
			run.Results = append(run.Results, sarifResult{
				RuleID:  string(f.Category) + "/" + f.Issue,
				Level:   sevToLevel(f.Severity),
				Message: sarifMessage{Text: f.Issue},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhys{
						ArtifactLocation: sarifArt{URI: r.Filename},
						Region:           sarifRegion{StartLine: f.Line},
					},
				}},
			})
		}
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
