package store

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	bolt "go.etcd.io/bbolt"
	"gopkg.in/yaml.v3"

	"alpacaclient/pkg/alpaca"
)

// Profile is a named device, so commands can say "mount" instead of
// "telescope/10.0.0.5/0".
type Profile struct {
	Name       string `json:"name" yaml:"name"`
	Descriptor string `json:"descriptor" yaml:"descriptor"`
	Scheme     string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	APIVersion int    `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	ClientID   uint32 `json:"client_id,omitempty" yaml:"client_id,omitempty"`
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.Contains(p.Name, "/") {
		return fmt.Errorf("profile name %q cannot contain '/'", p.Name)
	}
	if _, err := p.Open(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}

// Open builds the device facade. opts are applied before the profile's own
// settings.
func (p Profile) Open(opts ...alpaca.Option) (alpaca.AlpacaDevice, error) {
	if p.Scheme != "" {
		opts = append(opts, alpaca.WithScheme(p.Scheme))
	}
	if p.APIVersion != 0 {
		opts = append(opts, alpaca.WithAPIVersion(p.APIVersion))
	}
	if p.ClientID != 0 {
		opts = append(opts, alpaca.WithClientID(p.ClientID))
	}
	return alpaca.CreateClient(p.Descriptor, opts...)
}

// SaveProfile creates or replaces a profile.
func (s *Store) SaveProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.put(profilesBucket, p.Name, p)
}

func (s *Store) GetProfile(name string) (Profile, error) {
	var p Profile
	if err := s.get(profilesBucket, name, &p); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", name, err)
	}
	return p, nil
}

func (s *Store) DeleteProfile(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(profilesBucket))
		if b == nil || b.Get([]byte(name)) == nil {
			return fmt.Errorf("profile %s: %w", name, ErrNotFound)
		}
		return b.Delete([]byte(name))
	})
}

// ListProfiles returns every profile sorted by name.
func (s *Store) ListProfiles() ([]Profile, error) {
	names, err := s.keys(profilesBucket)
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(names))
	for _, name := range names {
		p, err := s.GetProfile(name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

type profileFile struct {
	Devices []Profile `yaml:"devices"`
}

// LoadProfiles reads profiles from a YAML document of the form
//
//	devices:
//	  - name: mount
//	    descriptor: telescope/10.0.0.5/0
//	    scheme: https
func LoadProfiles(r io.Reader) ([]Profile, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse profiles: %w", err)
	}

	seen := make(map[string]bool, len(f.Devices))
	for _, p := range f.Devices {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[p.Name] = true
	}
	return f.Devices, nil
}

// ImportProfiles saves every profile in r in one transaction and returns how
// many were saved. On error nothing is saved.
func (s *Store) ImportProfiles(r io.Reader) (int, error) {
	profiles, err := LoadProfiles(r)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(profilesBucket))
		if err != nil {
			return err
		}
		for _, p := range profiles {
			value, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(p.Name), value); err != nil {
				return fmt.Errorf("profile %s: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("import profiles: %w", err)
	}
	return len(profiles), nil
}
