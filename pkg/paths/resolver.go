package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
)

// HomeMarker is the prefix that stands for the home directory in targets.
const HomeMarker = "~"

// Resolver normalizes raw declared paths into absolute filesystem paths.
type Resolver struct {
	home     string
	repoRoot string
}

// NewResolver creates a resolver for the given home directory and
// repository root. Both are cleaned; they are expected to be absolute.
func NewResolver(home, repoRoot string) *Resolver {
	return &Resolver{
		home:     filepath.Clean(home),
		repoRoot: filepath.Clean(repoRoot),
	}
}

// Home returns the home directory targets are resolved against.
func (r *Resolver) Home() string { return r.home }

// RepoRoot returns the repository root sources are resolved against.
func (r *Resolver) RepoRoot() string { return r.repoRoot }

// Resolve normalizes raw for the given role. It fails with INVALID_PATH when
// the path is empty, malformed or inappropriate for the role.
func (r *Resolver) Resolve(raw string, role types.Role) (string, error) {
	if err := ValidatePath(raw); err != nil {
		return "", withRole(err, raw, role)
	}

	switch role {
	case types.RoleTarget:
		return r.resolveTarget(raw)
	case types.RoleSource:
		return r.resolveSource(raw)
	default:
		return "", errors.Newf(errors.ErrInternal, "unknown path role %s", role)
	}
}

func (r *Resolver) resolveTarget(raw string) (string, error) {
	var resolved string
	switch {
	case raw == HomeMarker:
		resolved = r.home
	case strings.HasPrefix(raw, HomeMarker+"/"):
		resolved = filepath.Join(r.home, raw[len(HomeMarker)+1:])
	case strings.HasPrefix(raw, HomeMarker):
		return "", errors.Newf(errors.ErrInvalidPath, "target %q uses another user's home directory", raw).
			WithDetail("path", raw).
			WithDetail("role", types.RoleTarget.String())
	case filepath.IsAbs(raw):
		resolved = filepath.Clean(raw)
	default:
		// bare relative targets are home relative
		resolved = filepath.Join(r.home, raw)
	}

	if resolved == r.home || resolved == string(filepath.Separator) {
		return "", errors.Newf(errors.ErrInvalidPath, "target %q resolves to %s", raw, resolved).
			WithDetail("path", raw).
			WithDetail("role", types.RoleTarget.String())
	}
	return resolved, nil
}

func (r *Resolver) resolveSource(raw string) (string, error) {
	if strings.HasPrefix(raw, HomeMarker) {
		return "", errors.Newf(errors.ErrInvalidPath,
			"source %q uses the home marker; sources are relative to the repository", raw).
			WithDetail("path", raw).
			WithDetail("role", types.RoleSource.String())
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw), nil
	}
	return filepath.Join(r.repoRoot, raw), nil
}

// ResolveDeclaration resolves both sides of a declaration. The target is
// resolved first, so a declaration broken on both sides reports the target.
func (r *Resolver) ResolveDeclaration(decl types.Declaration) (types.ResolvedLink, error) {
	target, err := r.Resolve(decl.Target, types.RoleTarget)
	if err != nil {
		return types.ResolvedLink{Declaration: decl}, err
	}
	source, err := r.Resolve(decl.Source, types.RoleSource)
	if err != nil {
		return types.ResolvedLink{Declaration: decl, Target: target}, err
	}
	return types.ResolvedLink{Declaration: decl, Target: target, Source: source}, nil
}

// InRepository reports whether an absolute path lies inside the repository.
func (r *Resolver) InRepository(path string) bool {
	return IsWithin(path, r.repoRoot)
}

// Display shortens an absolute path under the home directory back to "~/...".
func (r *Resolver) Display(path string) string {
	if path == r.home {
		return HomeMarker
	}
	if IsWithin(path, r.home) {
		rel, err := filepath.Rel(r.home, path)
		if err == nil {
			return HomeMarker + "/" + filepath.ToSlash(rel)
		}
	}
	return path
}

// IsWithin reports whether path is root or lies below it. Both are cleaned
// lexically; symlinks are not followed.
func IsWithin(path, root string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func withRole(err error, raw string, role types.Role) error {
	if derr, ok := err.(*errors.DotfError); ok {
		return derr.WithDetail("path", raw).WithDetail("role", role.String())
	}
	return err
}
