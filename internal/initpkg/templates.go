package initpkg

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nitrate-lang/no3/internal/manifest"
	"github.com/nitrate-lang/no3/internal/spdx"
)

const dockerIgnore = `.no3/
.git/
`

const gitIgnore = `# Prerequisites
*.d

# Compiled Object files
*.slo
*.lo
*.o
*.obj

# Precompiled Headers
*.gch
*.pch

# Compiled Dynamic libraries
*.so
*.dylib
*.dll

# Fortran module files
*.mod
*.smod

# Compiled Static libraries
*.lai
*.la
*.a
*.lib

# Executables
*.exe
*.out
*.app

# Nitrate specific artifacts
.no3/

# Other
`

const codeOfConduct = `# Contributor Covenant Code of Conduct

## Our Pledge

We as members, contributors, and leaders pledge to make participation in our
community a harassment-free experience for everyone, regardless of age, body
size, visible or invisible disability, ethnicity, sex characteristics, gender
identity and expression, level of experience, education, socio-economic status,
nationality, personal appearance, race, caste, color, religion, or sexual
identity and orientation.

We pledge to act and interact in ways that contribute to an open, welcoming,
diverse, inclusive, and healthy community.

## Enforcement

Instances of abusive, harassing, or otherwise unacceptable behavior may be
reported to the community leaders responsible for enforcement at
[INSERT CONTACT METHOD]. All complaints will be reviewed and investigated
promptly and fairly.

## Attribution

This Code of Conduct is adapted from the Contributor Covenant, version 2.1,
available at https://www.contributor-covenant.org/version/2/1/code_of_conduct.html
`

const defaultLibSource = `@use "v1.0";

import std::io;

scope example_lib {
  pub fn foo(): i32 {
    print("Hello, world!");
    ret 20;
  }

  pub fn pure bar(x: i32, y: str): i32 {
    print("x: ", x, ", y: ", y);
    ret x + y.len();
  }
}
`

const defaultMainSource = `@use "v1.0";

import std.io;
import std.time;

pub fn main(args: [str]): i32 {
  let day = std::time::now().day_of_week();
  print(f"Welcome, it is a beautiful {day}!");

  if "--help" in args || "-h" in args {
    print("Usage: main [options]");
    print("Options:");
    print("  --help: Display this help message.");
    print("  --version: Display the version of the program.");
    ret 0;
  }

  if "--version" in args || "-v" in args {
    print("main v1.0.0");
    ret 0;
  }

  ret 0;
}
`

// GenerateGitKeep returns the (empty) contents of a docs/.gitkeep file.
func GenerateGitKeep() string { return "" }

// GenerateGitIgnore returns the default .gitignore contents.
func GenerateGitIgnore() string { return gitIgnore }

// GenerateDockerIgnore returns the default .dockerignore contents.
func GenerateDockerIgnore() string { return dockerIgnore }

// GenerateCodeOfConduct returns the static CODE_OF_CONDUCT.md contents.
func GenerateCodeOfConduct() string { return codeOfConduct }

// GenerateDefaultLibrarySource returns the template body for a new
// library or standard-library package's src/lib source file.
func GenerateDefaultLibrarySource() string { return defaultLibSource }

// GenerateDefaultMainSource returns the template body for a new
// executable package's src/main source file.
func GenerateDefaultMainSource() string { return defaultMainSource }

// GenerateLicense returns the full text of spdxLicense, or an empty
// string if this driver has no bundled text for it.
func GenerateLicense(spdxLicense string) string {
	text, _ := spdx.GetLicenseText(spdxLicense)
	return text
}

// githubUsername extracts the GitHub username from a "@gh-<user>/..."
// package name.
func githubUsername(name string) (string, bool) {
	const prefix = "@gh-"
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	rest := name[len(prefix):]
	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return "", false
	}
	return rest[:slash], true
}

// packageName returns the name segment after the first "/".
func packageName(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// beautifyName replaces hyphens with spaces and capitalizes each word.
func beautifyName(name string) string {
	r := []rune(strings.ReplaceAll(name, "-", " "))
	for i := range r {
		if i == 0 || r[i-1] == ' ' {
			r[i] = unicode.ToUpper(r[i])
		}
	}
	return string(r)
}

func urlEncode(text string) string {
	var b strings.Builder
	for _, c := range []byte(text) {
		if isAlnum(c) || c == '-' || c == '_' || c == '.' || c == '~' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// shieldsIOEscape doubles hyphens (shields.io's escape convention) before
// percent-encoding the remainder, mirroring ShieldsIOEscapeContent.
func shieldsIOEscape(text string) string {
	return urlEncode(strings.ReplaceAll(text, "-", "--"))
}

func categoryLabel(c manifest.Category) string {
	switch c {
	case manifest.Library:
		return "library"
	case manifest.StandardLibrary:
		return "stdlib"
	default:
		return "exe"
	}
}

// GenerateSecurityPolicy returns templated SECURITY.md contents for a
// package, adding a GitHub Security Advisory link when fullName
// carries a "@gh-" prefix.
func GenerateSecurityPolicy(fullName string) string {
	ghUser, hasGH := githubUsername(fullName)
	name := packageName(fullName)
	niceName := beautifyName(name)

	var b strings.Builder
	fmt.Fprintf(&b, "# Reporting Security Issues\n\nThe (\"%s\") project team and community take security bugs in\n", niceName)
	fmt.Fprintf(&b, "the (\"%s\") project seriously.\n", niceName)
	b.WriteString("We appreciate your efforts to disclose your findings responsibly and will make\n")
	b.WriteString("every effort to acknowledge your contributions.\n\n")

	if hasGH {
		fmt.Fprintf(&b, "Please use the GitHub Security Advisory\n[\"Report a Vulnerability\"](https://github.com/%s/%s/security/advisories/new)\ntab to report a security issue.\n\n", ghUser, name)
	}

	fmt.Fprintf(&b, "The (\"%s\") project team will send a response indicating the next steps in handling\n", niceName)
	b.WriteString("your report, and will keep you informed of progress toward a fix.\n\n")
	fmt.Fprintf(&b, "Thank you for keeping the (\"%s\") project and its community safe.\n", niceName)

	return b.String()
}

// GenerateContributingPolicy returns templated CONTRIBUTING.md contents.
func GenerateContributingPolicy(opts Options) string {
	niceName := beautifyName(packageName(opts.Name))

	var b strings.Builder
	fmt.Fprintf(&b, "# Contributing to the (\"%s\") Project\n\n", niceName)
	b.WriteString("**LEGAL NOTICE**\n\n")
	fmt.Fprintf(&b, "1. Regarding Your contributions and the legality thereof, all intellectual property\n")
	fmt.Fprintf(&b, "   delivered to the maintainers of this (\"%s\") project is required to be usable\n", niceName)
	b.WriteString("   by the maintainers for any purpose reasonably foreseeable by a project maintainer.\n\n")
	b.WriteString("2. To decline compliance with clause 1, conspicuously state these declinations at\n")
	b.WriteString("   least once per submission that does not comply with clause 1.\n")

	return b.String()
}

// GenerateCMakeListsTxt returns templated CMakeLists.txt contents that
// shell out to the no3 build tool.
func GenerateCMakeListsTxt(packageFullName string) string {
	name := packageName(packageFullName)

	var b strings.Builder
	fmt.Fprintf(&b, "cmake_minimum_required(VERSION 3.15)\n")
	fmt.Fprintf(&b, "set(THIS_PROJECT_NAME \"nitrate-%s\")\n", name)
	b.WriteString("project(${THIS_PROJECT_NAME})\n\n")
	b.WriteString("set(PACKAGE_DIRECTORY \"${CMAKE_CURRENT_SOURCE_DIR}\")\n")
	b.WriteString("find_program(NITRATE_TOOL_EXE \"no3\" REQUIRED)\n\n")
	b.WriteString("if(NOT BUILD_MODE)\n  set(BUILD_MODE \"--rapid\")\n")
	b.WriteString("elseif(NOT BUILD_MODE STREQUAL \"--rapid\" AND NOT BUILD_MODE STREQUAL \"--debug\" AND NOT BUILD_MODE STREQUAL \"--release\")\n")
	b.WriteString("  message(FATAL_ERROR \"Invalid build mode: ${BUILD_MODE}\")\n")
	b.WriteString("endif()\n\n")
	b.WriteString("add_custom_target(\n  ${THIS_PROJECT_NAME}\n  ALL\n  COMMAND ${NITRATE_TOOL_EXE} build ${BUILD_MODE} ${PACKAGE_DIRECTORY}\n)\n")

	return b.String()
}

// GenerateReadme returns templated README.md contents for a new package.
func GenerateReadme(opts Options) string {
	ghUser, hasGH := githubUsername(opts.Name)
	name := packageName(opts.Name)
	niceName := beautifyName(name)
	shieldsLicense := shieldsIOEscape(opts.License)
	category := categoryLabel(opts.Category)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", niceName)
	fmt.Fprintf(&b, "![](https://img.shields.io/badge/license-%s-b3e32d.svg)\n", shieldsLicense)
	fmt.Fprintf(&b, "![](https://img.shields.io/badge/package_kind-%s-cyan.svg)\n", category)
	b.WriteString("![](https://img.shields.io/badge/cmake_integration-true-purple.svg)\n\n")
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "%s\n\n", opts.Description)
	b.WriteString("## Installation\n\n")

	switch {
	case hasGH && (opts.Category == manifest.Library || opts.Category == manifest.StandardLibrary):
		fmt.Fprintf(&b, "```bash\ncd <your_project>\nno3 install https://github.com/%s/%s\n```\n\n", ghUser, name)
	case hasGH:
		fmt.Fprintf(&b, "```bash\nno3 install https://github.com/%s/%s\n```\n\n", ghUser, name)
	case opts.Category == manifest.StandardLibrary:
		b.WriteString("This package should be installed by default with the Nitrate toolchain.\n\n")
	default:
		b.WriteString("TODO: Write instructions on how to install this package.\n\n")
	}

	b.WriteString("## Contributing\n\n")
	b.WriteString("Contributions are welcome! Please submit a pull request or open an issue if you have suggestions.\n\n")
	b.WriteString("## License\n\n")
	fmt.Fprintf(&b, "This project is licensed under the **%s** license. See the [LICENSE](LICENSE) file for more information.\n", opts.License)

	return b.String()
}
