package mutate

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/NielsdaWheelz/vaultsetup/internal/config"
	"github.com/NielsdaWheelz/vaultsetup/internal/errors"
	"github.com/NielsdaWheelz/vaultsetup/internal/fs"
)

type repositoryField struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// RewriteManifest sets name, description, author and repository in a
// package.json document. Other keys keep their order and values. The result
// is indented with two spaces and ends with a newline.
func RewriteManifest(data []byte, r config.Record) ([]byte, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, errors.New(errors.EManifestInvalid, "package manifest is not a valid JSON object")
	}

	repo, err := fs.MarshalJSON(repositoryField{Type: "git", URL: r.RemoteURL()})
	if err != nil {
		return nil, errors.Wrap(errors.EInternal, "failed to encode repository field", err)
	}

	out := data
	for _, set := range []struct {
		path  string
		value string
	}{
		{"name", r.GitHubRepo},
		{"description", r.SiteDescription},
		{"author", r.Author},
	} {
		if out, err = sjson.SetBytes(out, set.path, set.value); err != nil {
			return nil, errors.Wrap(errors.EManifestInvalid, "failed to set "+set.path, err)
		}
	}
	if out, err = sjson.SetRawBytes(out, "repository", bytes.TrimSpace(repo)); err != nil {
		return nil, errors.Wrap(errors.EManifestInvalid, "failed to set repository", err)
	}

	var compact, indented bytes.Buffer
	if err := json.Compact(&compact, out); err != nil {
		return nil, errors.Wrap(errors.EManifestInvalid, "package manifest is not valid JSON", err)
	}
	if err := json.Indent(&indented, compact.Bytes(), "", "  "); err != nil {
		return nil, errors.Wrap(errors.EManifestInvalid, "package manifest is not valid JSON", err)
	}
	indented.WriteByte('\n')
	return indented.Bytes(), nil
}

// UpdateManifest rewrites the project's package manifest.
func UpdateManifest(p Project, r config.Record) (bool, error) {
	rel := p.Paths.Manifest
	data, err := p.readFile(rel)
	if err != nil {
		return false, err
	}
	out, err := RewriteManifest(data, r)
	if err != nil {
		if se, ok := errors.AsSetupError(err); ok {
			if se.Details == nil {
				se.Details = map[string]string{}
			}
			se.Details["path"] = p.path(rel)
		}
		return false, err
	}
	return p.writeIfChanged(rel, data, out)
}
