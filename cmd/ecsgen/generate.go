package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"
)

const ecsImportPath = "github.com/plus3/sigecs/ecs"

const sourceTemplate = `// Code generated by ecsgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import "{{.ImportPath}}"
{{range .Signatures}}
{{- if .Members}}
// {{.Name}} requires {{join .Members ", "}}.
{{- else}}
// {{.Name}} matches every entity.
{{- end}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.}}
{{- end}}
}
{{end}}
// NewSettings registers the kinds declared in {{.Source}}, in order.
func NewSettings() *ecs.Settings {
	s := ecs.NewSettings()
{{- range .Components}}
	ecs.RegisterComponent[{{.}}](s)
{{- end}}
{{- range .Tags}}
	ecs.RegisterTag[{{.}}](s)
{{- end}}
{{- range .Signatures}}
	ecs.RegisterSignature[{{.Name}}](s)
{{- end}}
	return s
}
`

var tmpl = template.Must(template.New("catalog").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(sourceTemplate))

type signatureData struct {
	Name    string
	Members []string
	Fields  []string
}

type templateData struct {
	Source     string
	Package    string
	ImportPath string
	Components []string
	Tags       []string
	Signatures []signatureData
}

// Generate renders the Go source for c. Tags become embedded value fields and
// every other member an embedded pointer field, so members missing from the
// catalog still compile as long as the type exists in the package.
func Generate(c *Catalog, source string) ([]byte, error) {
	data := templateData{
		Source:     filepath.Base(source),
		Package:    c.Package,
		ImportPath: ecsImportPath,
		Components: c.Components,
		Tags:       c.Tags,
	}
	for _, sig := range c.Signatures {
		sd := signatureData{Name: sig.Name, Members: sig.Members}
		for _, member := range sig.Members {
			if c.kindOf(member) == memberTag {
				sd.Fields = append(sd.Fields, member)
			} else {
				sd.Fields = append(sd.Fields, "*"+member)
			}
		}
		data.Signatures = append(data.Signatures, sd)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("ecsgen: execute template: %w", err)
	}

	out, err := imports.Process(source+".go", buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ecsgen: format generated source: %w", err)
	}
	return out, nil
}

// WriteIfChanged writes src to path unless the file already holds exactly src.
// It reports whether the file was written.
func WriteIfChanged(path string, src []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, src) {
		return false, nil
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, fmt.Errorf("ecsgen: write %s: %w", path, err)
	}
	return true, nil
}
