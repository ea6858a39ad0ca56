// Package specfile loads YAML interface specs: the declared functions,
// their parameters and defaults, and their positional-only boundaries.
package specfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arpegio/posonly/internal/boundary"
	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/model"
)

// ParamSpec declares one parameter of a function.
type ParamSpec struct {
	Name string `yaml:"name"`
	// Kind is "normal" (default), "variadic", or "keyword".
	Kind string `yaml:"kind,omitempty"`
	// Default is the visible default value; absence means the parameter
	// is required.
	Default yaml.Node `yaml:"default,omitempty"`
	// Limit marks the positional-only boundary at this parameter, the
	// spec-file spelling of the posonly.Limit sentinel default.
	Limit bool `yaml:"limit,omitempty"`
}

// FuncSpec declares one function and its calling convention.
type FuncSpec struct {
	Name   string      `yaml:"name"`
	Params []ParamSpec `yaml:"params"`
	// Positional pins the boundary to an explicit count. Unset means
	// automatic resolution (limit marker, then first default).
	Positional *int `yaml:"positional,omitempty"`
}

// File is a parsed interface spec document.
type File struct {
	Functions []FuncSpec `yaml:"functions"`
}

// Load reads and parses an interface spec file.
func Load(path string) (*File, error) {
	f, _, err := LoadWithHash(path)
	return f, err
}

// LoadWithHash additionally returns "sha256:<hex>" of the raw file bytes,
// recorded in audit entries so enforcement decisions stay traceable to
// the exact spec revision.
func LoadWithHash(path string) (*File, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read spec %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parse spec %s: %w", path, err)
	}
	if len(f.Functions) == 0 {
		return nil, "", fmt.Errorf("spec %s declares no functions", path)
	}

	sum := sha256.Sum256(data)
	return &f, "sha256:" + hex.EncodeToString(sum[:]), nil
}

// ParamList converts the declared parameter specs to a model list. Limit
// markers become sentinel defaults so resolution follows the same path as
// code-declared callables.
func (fs FuncSpec) ParamList() (model.ParamList, error) {
	params := make(model.ParamList, 0, len(fs.Params))
	for _, ps := range fs.Params {
		p := model.Parameter{Name: ps.Name}
		switch ps.Kind {
		case "", "normal":
		case "variadic":
			p.Kind = model.KindVariadic
		case "keyword":
			p.Kind = model.KindKeywordCatchAll
		default:
			return nil, &model.ConfigurationError{
				Func:   fs.Name,
				Reason: fmt.Sprintf("parameter '%s' has unknown kind %q", ps.Name, ps.Kind),
			}
		}
		if ps.Limit {
			if !ps.Default.IsZero() {
				return nil, &model.ConfigurationError{
					Func:   fs.Name,
					Reason: fmt.Sprintf("parameter '%s' declares both limit and a default", ps.Name),
				}
			}
			p.Default = model.Limit
			p.HasDefault = true
		} else if !ps.Default.IsZero() {
			var v any
			if err := ps.Default.Decode(&v); err != nil {
				return nil, fmt.Errorf("decode default for '%s' in `%s`: %w", ps.Name, fs.Name, err)
			}
			p.Default = v
			p.HasDefault = true
		}
		params = append(params, p)
	}
	return params, nil
}

// Hint returns the boundary hint declared on the function.
func (fs FuncSpec) Hint() boundary.Hint {
	if fs.Positional != nil {
		return boundary.Explicit(*fs.Positional)
	}
	return boundary.Auto()
}

// Guards resolves every declared function into an unbound guard, in
// declaration order. Any structural problem surfaces here, at load time.
func (f *File) Guards() ([]*guard.Guard, error) {
	seen := make(map[string]struct{}, len(f.Functions))
	guards := make([]*guard.Guard, 0, len(f.Functions))
	for _, fs := range f.Functions {
		if fs.Name == "" {
			return nil, &model.ConfigurationError{Reason: "function without a name"}
		}
		if _, dup := seen[fs.Name]; dup {
			return nil, &model.ConfigurationError{Func: fs.Name, Reason: "declared more than once"}
		}
		seen[fs.Name] = struct{}{}

		params, err := fs.ParamList()
		if err != nil {
			return nil, err
		}
		g, err := guard.New(fs.Name, nil, params, fs.Hint())
		if err != nil {
			return nil, err
		}
		guards = append(guards, g)
	}
	return guards, nil
}
