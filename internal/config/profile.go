package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a YAML file naming a reusable set of rules:
//
//	ignore:
//	  - "**/*.txt"
//	rules:
//	  del-files-without: "*(USA)*"
//	  del-last-variants: true
//	  del-roms-older-than: 1985
type Profile struct {
	Ignore []string `yaml:"ignore"`
	Rules  RuleSet  `yaml:"rules"`
}

// LoadProfile reads and decodes a profile. Unknown keys are rejected so a
// misspelt rule does not silently do nothing.
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	var p Profile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

// ApplyProfile loads c.ProfileFile, if set, underneath the rules already
// in c: values given on the command line win over the profile's.
func (c *Config) ApplyProfile() error {
	if c.ProfileFile == "" {
		return nil
	}
	p, err := LoadProfile(c.ProfileFile)
	if err != nil {
		return err
	}
	c.Rules = p.Rules.Merge(c.Rules)
	c.Ignore = append(p.Ignore, c.Ignore...)
	return nil
}
