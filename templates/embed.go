package templates

import (
	"embed"
	"io"
	"strings"
	"text/template"

	"alpacaclient/pkg/alpaca"
)

//go:embed *.tmpl
var FS embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
}

// LoadTemplates loads all templates from the embedded filesystem
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "*.tmpl")
}

// DeviceStatus is the data of status.tmpl. Fields that could not be read
// hold the error text instead.
type DeviceStatus struct {
	URL              string
	Name             string
	Description      string
	DriverInfo       []string
	DriverVersion    string
	InterfaceVersion string
	Connected        string
	State            []alpaca.StateProperty
	StateError       string
}

// ServerStatus is the data of server.tmpl.
type ServerStatus struct {
	Address     string
	Description alpaca.ServerDescription
	Versions    []int
	Devices     []alpaca.DeviceConfiguration
}

func RenderStatus(w io.Writer, tmpl *template.Template, status DeviceStatus) error {
	return tmpl.ExecuteTemplate(w, "status.tmpl", status)
}

func RenderServer(w io.Writer, tmpl *template.Template, status ServerStatus) error {
	return tmpl.ExecuteTemplate(w, "server.tmpl", status)
}
