package main

import (
	"errors"
	"fmt"
	"go/token"
	"os"

	"github.com/plus3/sigecs/ecs"
	"gopkg.in/yaml.v3"
)

// Catalog is the build-time declaration of a Settings: the component, tag and
// signature kinds in registration order.
type Catalog struct {
	Package    string         `yaml:"package"`
	Components []string       `yaml:"components"`
	Tags       []string       `yaml:"tags"`
	Signatures []SignatureDef `yaml:"signatures"`
}

type SignatureDef struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

type memberKind int

const (
	memberUnknown memberKind = iota
	memberComponent
	memberTag
)

func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ecsgen: load %s: %w", filename, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("ecsgen: unmarshal catalog: %w", err)
	}
	return &c, nil
}

// Validate reports structural problems that would make the generated code
// fail to compile or to register. With strict set, signature members that are
// neither a component nor a tag of the catalog are errors too.
func (c *Catalog) Validate(strict bool) error {
	var errs []error
	if !token.IsIdentifier(c.Package) {
		errs = append(errs, fmt.Errorf("package %q is not a valid identifier", c.Package))
	}

	seen := make(map[string]string)
	declare := func(kind, name string) {
		if !token.IsIdentifier(name) {
			errs = append(errs, fmt.Errorf("%s %q is not a valid identifier", kind, name))
			return
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%s %s already declared as %s", kind, name, prev))
			return
		}
		seen[name] = kind
	}

	for _, name := range c.Components {
		declare("component", name)
	}
	for _, name := range c.Tags {
		declare("tag", name)
	}
	if n := len(c.Components) + len(c.Tags); n > ecs.MaxKinds {
		errs = append(errs, fmt.Errorf("%d components and tags exceed the limit of %d", n, ecs.MaxKinds))
	}

	for _, sig := range c.Signatures {
		declare("signature", sig.Name)

		members := make(map[string]bool, len(sig.Members))
		for _, member := range sig.Members {
			if members[member] {
				errs = append(errs, fmt.Errorf("signature %s lists %s twice", sig.Name, member))
				continue
			}
			members[member] = true

			if !token.IsIdentifier(member) {
				errs = append(errs, fmt.Errorf("signature %s: member %q is not a valid identifier", sig.Name, member))
				continue
			}
			if strict && c.kindOf(member) == memberUnknown {
				errs = append(errs, fmt.Errorf("signature %s: member %s is not a registered component or tag", sig.Name, member))
			}
		}
	}
	return errors.Join(errs...)
}

// Unregistered lists "Signature.Member" for every member outside the catalog.
func (c *Catalog) Unregistered() []string {
	var out []string
	for _, sig := range c.Signatures {
		for _, member := range sig.Members {
			if c.kindOf(member) == memberUnknown {
				out = append(out, sig.Name+"."+member)
			}
		}
	}
	return out
}

func (c *Catalog) kindOf(name string) memberKind {
	for _, n := range c.Components {
		if n == name {
			return memberComponent
		}
	}
	for _, n := range c.Tags {
		if n == name {
			return memberTag
		}
	}
	return memberUnknown
}
