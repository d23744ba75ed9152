package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// wireManifest mirrors nlohmann::ordered_json's field order in
// Manifest::ToJson: Go's encoding/json marshals struct fields in
// declaration order, so this struct's field order IS the wire order.
type wireManifest struct {
	Format       string           `json:"format"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	License      string           `json:"license"`
	Category     string           `json:"category"`
	Version      string           `json:"version"`
	Contacts     []wireContact    `json:"contacts"`
	Platforms    wirePlatforms    `json:"platforms"`
	Optimization wireOptimization `json:"optimization"`
	Dependencies []wireDependency `json:"dependencies"`
	Blockchain   []wireBlockchain `json:"blockchain"`
}

type wireContact struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone,omitempty"`
	Roles []string `json:"roles"`
}

type wirePlatforms struct {
	Allow []string `json:"allow"`
	Deny  []string `json:"deny"`
}

type wireSwitch struct {
	Alpha   []string `json:"alpha"`
	Beta    []string `json:"beta"`
	Gamma   []string `json:"gamma"`
	LLVM    []string `json:"llvm"`
	LTO     []string `json:"lto"`
	Runtime []string `json:"runtime"`
}

type wireProfile struct {
	Switch wireSwitch `json:"switch"`
}

type wireRequirements struct {
	MinCores   uint32 `json:"min-cores"`
	MinMemory  uint32 `json:"min-memory"`
	MinStorage uint32 `json:"min-storage"`
}

type wireOptimization struct {
	Rapid        wireProfile      `json:"rapid"`
	Debug        wireProfile      `json:"debug"`
	Release      wireProfile      `json:"release"`
	Requirements wireRequirements `json:"requirements"`
}

type wireDependency struct {
	UUID    string `json:"uuid"`
	Version string `json:"version"`
}

type wireKeyPair struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type wireBlockchain struct {
	UUID      string      `json:"uuid"`
	Category  string      `json:"category"`
	PublicKey wireKeyPair `json:"pubkey"`
	Signature wireKeyPair `json:"signature"`
}

func encodeVersion(v Version) string {
	if v.Patch == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func decodeVersion(s string) (Version, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("manifest: malformed version %q", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return Version{}, fmt.Errorf("manifest: malformed version %q: %w", s, err)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Version{}, fmt.Errorf("manifest: malformed version %q: %w", s, err)
	}

	var patch uint64
	if len(parts) == 3 {
		patch, err = strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			return Version{}, fmt.Errorf("manifest: malformed version %q: %w", s, err)
		}
	}

	return Version{Major: uint32(major), Minor: uint32(minor), Patch: uint32(patch)}, nil
}

func toWire(m Manifest) wireManifest {
	contacts := make([]wireContact, 0, len(m.Contacts))
	for _, c := range m.Contacts {
		roles := make([]string, 0, len(c.Roles))
		for _, r := range c.Roles {
			roles = append(roles, r.String())
		}
		contacts = append(contacts, wireContact{Name: c.Name, Email: c.Email, Phone: c.Phone, Roles: roles})
	}

	deps := make([]wireDependency, 0, len(m.Dependencies))
	for _, d := range m.Dependencies {
		deps = append(deps, wireDependency{UUID: d.UUID, Version: encodeVersion(d.Version)})
	}

	chain := make([]wireBlockchain, 0, len(m.Blockchain))
	for _, e := range m.Blockchain {
		chain = append(chain, wireBlockchain{
			UUID:      e.UUID,
			Category:  e.Category,
			PublicKey: wireKeyPair{Type: e.PublicKey.Type, Value: e.PublicKey.Value},
			Signature: wireKeyPair{Type: e.Signature.Type, Value: e.Signature.Value},
		})
	}

	toSwitch := func(s Switch) wireSwitch {
		return wireSwitch{
			Alpha: nonNil(s.Alpha), Beta: nonNil(s.Beta), Gamma: nonNil(s.Gamma),
			LLVM: nonNil(s.LLVM), LTO: nonNil(s.LTO), Runtime: nonNil(s.Runtime),
		}
	}

	return wireManifest{
		Format:      "1.0",
		Name:        m.Name,
		Description: m.Description,
		License:     m.License,
		Category:    m.Category.String(),
		Version:     encodeVersion(m.Version),
		Contacts:    contacts,
		Platforms:   wirePlatforms{Allow: nonNil(m.Platforms.Allow), Deny: nonNil(m.Platforms.Deny)},
		Optimization: wireOptimization{
			Rapid:   wireProfile{Switch: toSwitch(m.Optimization.Rapid)},
			Debug:   wireProfile{Switch: toSwitch(m.Optimization.Debug)},
			Release: wireProfile{Switch: toSwitch(m.Optimization.Release)},
			Requirements: wireRequirements{
				MinCores:   m.Optimization.Requirements.MinCores,
				MinMemory:  m.Optimization.Requirements.MinMemory,
				MinStorage: m.Optimization.Requirements.MinStorage,
			},
		},
		Dependencies: deps,
		Blockchain:   chain,
	}
}

// nonNil turns a nil slice into an empty one so it marshals as "[]"
// rather than "null".
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func fromWire(w wireManifest) (Manifest, error) {
	category, ok := parseCategory(w.Category)
	if !ok {
		return Manifest{}, fmt.Errorf("manifest: unknown category %q", w.Category)
	}

	version, err := decodeVersion(w.Version)
	if err != nil {
		return Manifest{}, err
	}

	contacts := make([]Contact, 0, len(w.Contacts))
	for _, c := range w.Contacts {
		roles := make([]ContactRole, 0, len(c.Roles))
		for _, r := range c.Roles {
			role, ok := parseContactRole(r)
			if !ok {
				return Manifest{}, fmt.Errorf("manifest: unknown contact role %q", r)
			}
			roles = append(roles, role)
		}
		contacts = append(contacts, Contact{Name: c.Name, Email: c.Email, Phone: c.Phone, Roles: roles})
	}

	deps := make([]Dependency, 0, len(w.Dependencies))
	for _, d := range w.Dependencies {
		v, err := decodeVersion(d.Version)
		if err != nil {
			return Manifest{}, err
		}
		deps = append(deps, Dependency{UUID: d.UUID, Version: v})
	}

	chain := make([]BlockchainEntry, 0, len(w.Blockchain))
	for _, e := range w.Blockchain {
		chain = append(chain, BlockchainEntry{
			UUID:      e.UUID,
			Category:  e.Category,
			PublicKey: KeyPair{Type: e.PublicKey.Type, Value: e.PublicKey.Value},
			Signature: Signature{Type: e.Signature.Type, Value: e.Signature.Value},
		})
	}

	fromSwitch := func(s wireSwitch) Switch {
		return Switch{Alpha: s.Alpha, Beta: s.Beta, Gamma: s.Gamma, LLVM: s.LLVM, LTO: s.LTO, Runtime: s.Runtime}
	}

	return Manifest{
		Name:        w.Name,
		Description: w.Description,
		License:     w.License,
		Category:    category,
		Version:     version,
		Contacts:    contacts,
		Platforms:   Platforms{Allow: w.Platforms.Allow, Deny: w.Platforms.Deny},
		Optimization: Optimization{
			Rapid:   fromSwitch(w.Optimization.Rapid.Switch),
			Debug:   fromSwitch(w.Optimization.Debug.Switch),
			Release: fromSwitch(w.Optimization.Release.Switch),
			Requirements: Requirements{
				MinCores:   w.Optimization.Requirements.MinCores,
				MinMemory:  w.Optimization.Requirements.MinMemory,
				MinStorage: w.Optimization.Requirements.MinStorage,
			},
		},
		Dependencies: deps,
		Blockchain:   chain,
	}, nil
}

// ToJSON serializes m into the fixed key order §4.5.2 requires. minify
// selects compact output; otherwise the result is indented with two
// spaces. correctSchema reports whether the emitted document itself
// passes VerifyUntrustedJSON, which can be false if m was built (or
// mutated) with content that bypasses the exported constructors' own
// checks.
func (m Manifest) ToJSON(minify bool) (data []byte, correctSchema bool, err error) {
	wire := toWire(m)

	if minify {
		data, err = json.Marshal(wire)
	} else {
		data, err = json.MarshalIndent(wire, "", "  ")
	}
	if err != nil {
		return nil, false, err
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return data, false, nil
	}

	return data, VerifyUntrustedJSON(generic), nil
}

// FromJSON parses data as a no3.json document. It returns an error if
// the document is not valid JSON or fails the schema walk; on success
// the returned Manifest is guaranteed to satisfy every invariant in
// §4.5.1.
func FromJSON(data []byte) (Manifest, error) {
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return Manifest{}, fmt.Errorf("manifest: invalid JSON: %w", err)
	}

	if !VerifyUntrustedJSON(generic) {
		return Manifest{}, fmt.Errorf("manifest: document failed schema validation")
	}

	var wire wireManifest
	if err := json.Unmarshal(data, &wire); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}

	return fromWire(wire)
}
