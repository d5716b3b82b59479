package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// ToolStatus is one tool line of the doctor report.
type ToolStatus struct {
	Name         string `json:"name"`
	Found        bool   `json:"found"`
	Version      string `json:"version"`             // raw version output; empty if missing
	BelowMinimum bool   `json:"below_minimum"`       // true if older than recommended
	ExitCode     int    `json:"exit_code,omitempty"` // version command exit code when non-zero
	Download     string `json:"download,omitempty"`
}

// DoctorReport holds all the data for doctor output.
type DoctorReport struct {
	ProjectRoot string `json:"project_root"`
	ConfigDir   string `json:"config_dir"`
	CacheDir    string `json:"cache_dir"`
	ConfigFile  string `json:"config_file"` // empty if no answers file was found

	IsRepo      bool   `json:"is_repo"`
	OriginURL   string `json:"origin_url"`   // empty if no origin
	GitHubOwner string `json:"github_owner"` // empty unless origin is on github.com
	GitHubRepo  string `json:"github_repo"`

	Tools []ToolStatus `json:"tools"`
}

// DoctorJSONEnvelope is the stable JSON output format for doctor --json.
type DoctorJSONEnvelope struct {
	SchemaVersion string        `json:"schema_version"`
	Data          *DoctorReport `json:"data"`
}

// WriteDoctorText writes the report as key: value lines.
func WriteDoctorText(w io.Writer, r DoctorReport) {
	fmt.Fprintf(w, "project_root: %s\n", r.ProjectRoot)
	fmt.Fprintf(w, "config_dir: %s\n", r.ConfigDir)
	fmt.Fprintf(w, "cache_dir: %s\n", r.CacheDir)
	fmt.Fprintf(w, "config_file: %s\n", optStr(r.ConfigFile))
	fmt.Fprintf(w, "git_repo: %s\n", yesNoLower(r.IsRepo))
	fmt.Fprintf(w, "origin_url: %s\n", optStr(r.OriginURL))
	if r.GitHubOwner != "" {
		fmt.Fprintf(w, "github_repo: %s/%s\n", r.GitHubOwner, r.GitHubRepo)
	}
	ok := true
	for _, t := range r.Tools {
		ok = ok && t.Found
		if !t.Found {
			fmt.Fprintf(w, "%s: missing (%s)\n", t.Name, t.Download)
			continue
		}
		line := t.Name + ": " + t.Version
		if t.BelowMinimum {
			line += " (below recommended minimum)"
		}
		if t.ExitCode != 0 {
			line += fmt.Sprintf(" (version command exited with code %d)", t.ExitCode)
		}
		fmt.Fprintln(w, line)
	}
	if ok {
		fmt.Fprintln(w, "status: ok")
	} else {
		fmt.Fprintln(w, "status: missing tools")
	}
}

// WriteDoctorJSON writes the report wrapped in a versioned envelope.
func WriteDoctorJSON(w io.Writer, r DoctorReport) error {
	env := DoctorJSONEnvelope{
		SchemaVersion: "1.0",
		Data:          &r,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func optStr(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func yesNoLower(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
