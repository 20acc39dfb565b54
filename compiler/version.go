package compiler

import (
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver"
)

// versionNumberPattern extracts a dotted version triple from the compiler's
// version banner.
var versionNumberPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// CompilerVersion obtains the version of a compiler binary by running its
// version command and parsing the banner.
func CompilerVersion(compilerBin string) (*semver.Version, error) {
	// Run the version command to obtain the compiler's banner output.
	out, err := exec.Command(compilerBin, "version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing '%s version':\nOUTPUT:\n%s\nERROR: %s\n", compilerBin, string(out), err.Error())
	}
	return parseVersionBanner(string(out))
}

// parseVersionBanner parses a semantic version out of compiler banner output.
func parseVersionBanner(banner string) (*semver.Version, error) {
	versionStr := versionNumberPattern.FindString(banner)
	if versionStr == "" {
		return nil, fmt.Errorf("could not parse a compiler version from banner output: %q", banner)
	}
	return semver.NewVersion(versionStr)
}
