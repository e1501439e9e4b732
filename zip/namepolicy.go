package zip

import (
	"fmt"
	"regexp"
	"strings"
)

// NamePolicy decides what Sanitize does with an entry name that would
// otherwise escape the extraction root: an absolute path, a Windows
// drive-letter root, or a parent-traversal ("..") component. This does
// not touch the filesystem; it only classifies and
// (for PolicyStrip) rewrites the name string. The front-end is still
// responsible for not following symlinks while creating the resulting
// path.
type NamePolicy int

const (
	// PolicyReject fails Sanitize outright on any unsafe name. This is
	// the default.
	PolicyReject NamePolicy = iota
	// PolicyStrip removes the unsafe components (leading slashes, drive
	// letters, and leading ".." segments) and returns the remaining,
	// now-relative path.
	PolicyStrip
	// PolicyAllow returns the name with only backslash-to-slash
	// normalization; the caller accepts the risk of escaping the root.
	PolicyAllow
)

var driveLetter = regexp.MustCompile(`(?i)^[a-z]:`)

// Sanitize classifies name and, depending on p, either rejects it,
// rewrites it to a safe relative path, or returns it unmodified (modulo
// separator normalization).
func (p NamePolicy) Sanitize(name string) (string, error) {
	norm := strings.ReplaceAll(name, `\`, "/")

	if p == PolicyAllow {
		return norm, nil
	}

	isAbs := strings.HasPrefix(norm, "/")
	hasDrive := driveLetter.MatchString(norm)

	trimmed := norm
	if hasDrive {
		trimmed = trimmed[2:]
	}

	parts := strings.Split(trimmed, "/")
	clean := make([]string, 0, len(parts))
	depth := 0
	traversed := false

	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if depth == 0 {
				traversed = true
				continue
			}
			depth--
			clean = clean[:len(clean)-1]
		default:
			depth++
			clean = append(clean, part)
		}
	}

	unsafe := isAbs || hasDrive || traversed
	switch p {
	case PolicyReject:
		if unsafe {
			return "", fmt.Errorf("entry name %q: %w", name, ErrUnsafeName)
		}
		return strings.Join(clean, "/"), nil
	case PolicyStrip:
		return strings.Join(clean, "/"), nil
	default:
		return "", fmt.Errorf("unknown name policy %d", int(p))
	}
}

// String returns the CLI token for p (reject/strip/allow).
func (p NamePolicy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyStrip:
		return "strip"
	case PolicyAllow:
		return "allow"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseNamePolicy parses the CLI token back into a NamePolicy.
func ParseNamePolicy(s string) (NamePolicy, error) {
	switch s {
	case "reject", "":
		return PolicyReject, nil
	case "strip":
		return PolicyStrip, nil
	case "allow":
		return PolicyAllow, nil
	default:
		return 0, fmt.Errorf("unknown name policy %q", s)
	}
}
