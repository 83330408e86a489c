// Package definition reads roadmaps declared as data. The same document can
// be written in YAML, TOML, JSON or HCL; the file extension picks the decoder.
//
// In YAML and JSON, groups, milestones and parallel tasks are lists named
// "groups", "tasks", "milestones" and "parallel". TOML uses arrays of tables
// and HCL uses labelled blocks, both in the singular: [[group]] / group "Name" {}.
package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFile   = errors.New("unsupported definition file type")
	ErrInvalidDefinition = errors.New("invalid roadmap definition")
)

// Definition is a whole roadmap file.
type Definition struct {
	Title       string `json:"title,omitempty" yaml:"title" toml:"title" hcl:"title,optional"`
	Subtitle    string `json:"subtitle,omitempty" yaml:"subtitle" toml:"subtitle" hcl:"subtitle,optional"`
	Footer      string `json:"footer,omitempty" yaml:"footer" toml:"footer" hcl:"footer,optional"`
	Description string `json:"description,omitempty" yaml:"description" toml:"description" hcl:"description,optional"`
	Theme       string `json:"theme,omitempty" yaml:"theme" toml:"theme" hcl:"theme,optional"`
	Width       int    `json:"width,omitempty" yaml:"width" toml:"width" hcl:"width,optional"`
	Height      int    `json:"height,omitempty" yaml:"height" toml:"height" hcl:"height,optional"`
	ShowMarker  *bool  `json:"show_marker,omitempty" yaml:"show_marker" toml:"show_marker" hcl:"show_marker,optional"`

	Timeline *TimelineDef `json:"timeline,omitempty" yaml:"timeline" toml:"timeline" hcl:"timeline,block"`
	Groups   []GroupDef   `json:"groups,omitempty" yaml:"groups" toml:"group" hcl:"group,block"`
}

// TimelineDef is the date axis.
type TimelineDef struct {
	Mode    string `json:"mode" yaml:"mode" toml:"mode" hcl:"mode"`
	Start   string `json:"start" yaml:"start" toml:"start" hcl:"start"`
	Periods int    `json:"periods" yaml:"periods" toml:"periods" hcl:"periods"`
}

// GroupDef is a band of tasks. Empty colours fall back to the theme.
type GroupDef struct {
	Name  string    `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Fill  string    `json:"fill,omitempty" yaml:"fill" toml:"fill" hcl:"fill,optional"`
	Font  string    `json:"font,omitempty" yaml:"font" toml:"font" hcl:"font,optional"`
	Tasks []TaskDef `json:"tasks,omitempty" yaml:"tasks" toml:"task" hcl:"task,block"`
}

// TaskDef is one row. End is inclusive.
type TaskDef struct {
	Name       string         `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Start      string         `json:"start" yaml:"start" toml:"start" hcl:"start"`
	End        string         `json:"end" yaml:"end" toml:"end" hcl:"end"`
	Fill       string         `json:"fill,omitempty" yaml:"fill" toml:"fill" hcl:"fill,optional"`
	Font       string         `json:"font,omitempty" yaml:"font" toml:"font" hcl:"font,optional"`
	Milestones []MilestoneDef `json:"milestones,omitempty" yaml:"milestones" toml:"milestone" hcl:"milestone,block"`
	Parallel   []ParallelDef  `json:"parallel,omitempty" yaml:"parallel" toml:"parallel" hcl:"parallel,block"`
}

// ParallelDef is a task drawn on its parent's row. It cannot nest further.
type ParallelDef struct {
	Name       string         `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Start      string         `json:"start" yaml:"start" toml:"start" hcl:"start"`
	End        string         `json:"end" yaml:"end" toml:"end" hcl:"end"`
	Fill       string         `json:"fill,omitempty" yaml:"fill" toml:"fill" hcl:"fill,optional"`
	Font       string         `json:"font,omitempty" yaml:"font" toml:"font" hcl:"font,optional"`
	Milestones []MilestoneDef `json:"milestones,omitempty" yaml:"milestones" toml:"milestone" hcl:"milestone,block"`
}

// MilestoneDef marks a single day on a task.
type MilestoneDef struct {
	Name   string `json:"name" yaml:"name" toml:"name" hcl:"name,label"`
	Date   string `json:"date" yaml:"date" toml:"date" hcl:"date"`
	Colour string `json:"colour,omitempty" yaml:"colour" toml:"colour" hcl:"colour,optional"`
}

// Extensions lists the accepted file extensions.
func Extensions() []string {
	return []string{".yaml", ".yml", ".toml", ".json", ".hcl"}
}

// Load reads, decodes and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading definition file %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes data according to filename's extension and validates it.
func Parse(data []byte, filename string) (*Definition, error) {
	var def Definition
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &def)
	case ".toml":
		err = decodeTOML(data, &def)
	case ".json":
		err = decodeJSON(data, &def)
	case ".hcl":
		err = decodeHCL(data, filename, &def)
	default:
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFile, ext, strings.Join(Extensions(), ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	if err := Validate(&def); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &def, nil
}

func decodeYAML(data []byte, def *Definition) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}
	return nil
}

func decodeTOML(data []byte, def *Definition) error {
	md, err := toml.Decode(string(data), def)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeJSON(data []byte, def *Definition) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(def)
}

func decodeHCL(data []byte, filename string, def *Definition) error {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return diags
	}
	if diags := gohcl.DecodeBody(file.Body, nil, def); diags.HasErrors() {
		return diags
	}
	return nil
}
