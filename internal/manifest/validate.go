package manifest

import (
	"regexp"
	"strings"
)

var (
	semverFull  = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
	uuidPattern = regexp.MustCompile(
		`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
	)
	ed25519PubkeyPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)
	ed25519SigPattern    = regexp.MustCompile(`^[0-9a-fA-F]{128}$`)
)

var validRoles = map[string]bool{
	"owner": true, "contributor": true, "maintainer": true, "support": true,
}

var validBlockchainCategories = map[string]bool{
	"eco-root": true, "eco-domain": true, "user-account": true, "package": true, "subpackage": true,
}

// VerifyUntrustedJSON runs the full schema walk described in
// core/package/Manifest.cc's no3::package::check namespace over j, a
// generic decode of an untrusted no3.json document. It returns false at
// the first failing check rather than partially accepting the document.
func VerifyUntrustedJSON(j map[string]any) bool {
	format, ok := stringField(j, "format")
	if !ok || !semverFull.MatchString(format) || !strings.HasPrefix(format, "1.") {
		return false
	}

	name, ok := stringField(j, "name")
	if !ok || !IsValidName(name) {
		return false
	}

	if _, ok := stringField(j, "description"); !ok {
		return false
	}

	license, ok := stringField(j, "license")
	if !ok || !IsValidLicense(license) {
		return false
	}

	category, ok := stringField(j, "category")
	if !ok || (category != "std" && category != "lib" && category != "exe") {
		return false
	}

	version, ok := stringField(j, "version")
	if !ok || !semverFull.MatchString(version) {
		return false
	}

	if !validateContacts(j["contacts"]) {
		return false
	}

	if !validatePlatforms(j["platforms"]) {
		return false
	}

	if !validateOptimization(j["optimization"]) {
		return false
	}

	if !validateDependencies(j["dependencies"]) {
		return false
	}

	if !validateBlockchain(j["blockchain"]) {
		return false
	}

	return true
}

func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func asArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func validateContacts(v any) bool {
	contacts, ok := asArray(v)
	if !ok {
		return false
	}

	for _, raw := range contacts {
		c, ok := asObject(raw)
		if !ok {
			return false
		}

		if _, ok := stringField(c, "name"); !ok {
			return false
		}
		if _, ok := stringField(c, "email"); !ok {
			return false
		}
		if phone, present := c["phone"]; present {
			if _, ok := phone.(string); !ok {
				return false
			}
		}

		roles, ok := asArray(c["roles"])
		if !ok {
			return false
		}
		for _, r := range roles {
			role, ok := r.(string)
			if !ok || !validRoles[role] {
				return false
			}
		}
	}

	return true
}

func validatePlatforms(v any) bool {
	p, ok := asObject(v)
	if !ok {
		return false
	}

	return isStringArray(p["allow"]) && isStringArray(p["deny"])
}

func isStringArray(v any) bool {
	arr, ok := asArray(v)
	if !ok {
		return false
	}
	for _, e := range arr {
		if _, ok := e.(string); !ok {
			return false
		}
	}
	return true
}

func validateOptimizationSwitch(v any) bool {
	s, ok := asObject(v)
	if !ok {
		return false
	}

	for _, key := range []string{"alpha", "beta", "gamma", "llvm", "lto", "runtime"} {
		if !isStringArray(s[key]) {
			return false
		}
	}

	return true
}

func validateOptimization(v any) bool {
	opt, ok := asObject(v)
	if !ok {
		return false
	}

	for _, profile := range []string{"rapid", "debug", "release"} {
		p, ok := asObject(opt[profile])
		if !ok {
			return false
		}
		if !validateOptimizationSwitch(p["switch"]) {
			return false
		}
	}

	req, ok := asObject(opt["requirements"])
	if !ok {
		return false
	}
	for _, key := range []string{"min-cores", "min-memory", "min-storage"} {
		if !isUnsignedNumber(req[key]) {
			return false
		}
	}

	return true
}

func isUnsignedNumber(v any) bool {
	n, ok := v.(float64)
	return ok && n >= 0
}

func validateDependencies(v any) bool {
	deps, ok := asArray(v)
	if !ok {
		return false
	}

	for _, raw := range deps {
		d, ok := asObject(raw)
		if !ok {
			return false
		}

		uuid, ok := stringField(d, "uuid")
		if !ok || !uuidPattern.MatchString(uuid) {
			return false
		}

		version, ok := stringField(d, "version")
		if !ok || !semverFull.MatchString(version) {
			return false
		}
	}

	return true
}

func validateKeyPair(v any, valuePattern *regexp.Regexp) bool {
	obj, ok := asObject(v)
	if !ok || len(obj) != 2 {
		return false
	}

	typ, ok := stringField(obj, "type")
	if !ok || typ != "ed25519" {
		return false
	}

	value, ok := stringField(obj, "value")
	return ok && valuePattern.MatchString(value)
}

func validateBlockchain(v any) bool {
	entries, ok := asArray(v)
	if !ok {
		return false
	}

	for _, raw := range entries {
		e, ok := asObject(raw)
		if !ok {
			return false
		}

		uuid, ok := stringField(e, "uuid")
		if !ok || !uuidPattern.MatchString(uuid) {
			return false
		}

		category, ok := stringField(e, "category")
		if !ok || !validBlockchainCategories[category] {
			return false
		}

		if !validateKeyPair(e["pubkey"], ed25519PubkeyPattern) {
			return false
		}
		if !validateKeyPair(e["signature"], ed25519SigPattern) {
			return false
		}
	}

	return true
}
