package changeset

import (
	"fmt"
	"strings"
)

// FilterProposalFiles keeps JSON files whose path contains the proposal
// directory, preserving order.
func FilterProposalFiles(names []string, dir string) []string {
	marker := strings.TrimSuffix(dir, "/") + "/"
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !strings.Contains(name, marker) {
			continue
		}
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		out = append(out, name)
	}
	return out
}

// SplitRepo splits an "owner/name" repository slug.
func SplitRepo(repository string) (string, string, error) {
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository %q is not owner/name", repository)
	}
	return owner, name, nil
}
