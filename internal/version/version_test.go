package version

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeGit(exactMatchErr error, describe string, describeErr error) func(...string) (string, error) {
	return func(args ...string) (string, error) {
		if len(args) == 0 {
			return "", fmt.Errorf("no args")
		}
		switch args[0] {
		case "rev-parse":
			return ".git", nil
		case "describe":
			for _, a := range args {
				if a == "--exact-match" {
					return "", exactMatchErr
				}
			}
			return describe, describeErr
		default:
			return "", fmt.Errorf("unexpected git subcommand %q", args[0])
		}
	}
}

func TestResolveVersionTaggedRelease(t *testing.T) {
	t.Parallel()

	got := resolveVersion("0.1.0", fakeGit(nil, "", nil))
	require.Equal(t, "0.1.0", got)
}

func TestResolveVersionNotARepo(t *testing.T) {
	t.Parallel()

	git := func(...string) (string, error) { return "", errors.New("not a git repository") }
	require.Equal(t, "0.1.0", resolveVersion("0.1.0", git))
}

func TestResolveVersionDevBuildWithMatchingPrefix(t *testing.T) {
	t.Parallel()

	got := resolveVersion("0.1.0", fakeGit(errors.New("no tag"), "v0.1.0-3-gabc1234", nil))
	require.Equal(t, "0.1.0-3-gabc1234", got)
}

func TestResolveVersionDevBuildWithForeignDescribe(t *testing.T) {
	t.Parallel()

	got := resolveVersion("0.1.0", fakeGit(errors.New("no tag"), "abc1234-dirty", nil))
	require.Equal(t, "0.1.0-abc1234-dirty", got)
}

func TestResolveVersionEmptyBase(t *testing.T) {
	t.Parallel()

	git := func(...string) (string, error) { return "", errors.New("not a git repository") }
	require.Equal(t, "0.0.0", resolveVersion("", git))
}
