package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	domainauth "github.com/squidword/squidword/internal/domain/auth"
	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/ports"
)

// Profile field paths, evaluated against decoded provider documents.
const (
	exprSubjectID   = "data.id"
	exprSubjectType = "data.type"
	exprFirstName   = "data.name.first"
	exprMiddleName  = "data.name.middle"
	exprLastName    = "data.name.last"
	exprRoles       = "data.roles"
)

var profileExprs = []string{
	exprSubjectID, exprSubjectType, exprFirstName, exprMiddleName, exprLastName, exprRoles,
}

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return errors.New("empty expression")
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

type roleMapperFunc func(claims []string) domainauth.Role

func (f roleMapperFunc) Map(claims []string) domainauth.Role { return f(claims) }

// UserResolverOptions groups dependencies for UserResolver.
type UserResolverOptions struct {
	Fetcher   ports.ProfileFetcher // Required
	Roles     ports.RoleMapper     // Optional; defaults to the fixed role priority
	Evaluator JMESPathEvaluator    // Optional; defaults to go-jmespath
}

// UserResolver turns an identity response into a fully populated user.
type UserResolver struct {
	fetcher ports.ProfileFetcher
	roles   ports.RoleMapper
	jems    JMESPathEvaluator
}

// NewUserResolver constructs a UserResolver.
func NewUserResolver(opts UserResolverOptions) (*UserResolver, error) {
	if opts.Fetcher == nil {
		return nil, errors.New("ProfileFetcher is required")
	}
	roles := opts.Roles
	if roles == nil {
		roles = roleMapperFunc(domainauth.ResolveRole)
	}
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	for _, expr := range profileExprs {
		if err := jems.Validate(expr); err != nil {
			return nil, fmt.Errorf("compile %q: %w", expr, err)
		}
	}
	return &UserResolver{fetcher: opts.Fetcher, roles: roles, jems: jems}, nil
}

// Resolve validates the subject type, fetches the user document and builds the user.
// It either returns a complete user or an error; never a partial user.
func (r *UserResolver) Resolve(ctx context.Context, identity any, token string) (domainauth.User, error) {
	subjectType, _ := r.optionalString(exprSubjectType, identity)
	if domainauth.SubjectType(subjectType) != domainauth.SubjectUser {
		return domainauth.User{}, apperrors.UnsupportedSubjectType(subjectType)
	}

	id, err := r.requiredNonEmpty(exprSubjectID, identity)
	if err != nil {
		return domainauth.User{}, err
	}

	endpoint := fmt.Sprintf("/v3.0/%ss/%s", subjectType, url.PathEscape(id))
	doc, err := r.fetcher.Get(ctx, endpoint, token)
	if err != nil {
		if apperrors.IsFetchFailed(err) {
			return domainauth.User{}, err
		}
		return domainauth.User{}, apperrors.FetchFailed(endpoint, err)
	}

	first, err := r.requiredNonEmpty(exprFirstName, doc)
	if err != nil {
		return domainauth.User{}, err
	}
	last, err := r.requiredString(exprLastName, doc)
	if err != nil {
		return domainauth.User{}, err
	}
	claims, err := r.roleClaims(doc)
	if err != nil {
		return domainauth.User{}, err
	}

	user := domainauth.User{
		ID:   id,
		Type: domainauth.SubjectUser,
		Name: domainauth.Name{
			First: first,
			Last:  last,
		},
		Roles:        claims,
		ResolvedRole: r.roles.Map(claims),
	}
	if middle, ok := r.optionalString(exprMiddleName, doc); ok {
		user.Name.Middle = &middle
	}
	return user, nil
}

func (r *UserResolver) requiredString(expr string, data any) (string, error) {
	v, err := r.jems.Evaluate(expr, data)
	if err != nil {
		return "", apperrors.MalformedProfile(expr, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", apperrors.MalformedProfile(expr, nil)
	}
	return s, nil
}

// requiredNonEmpty also rejects blank values; the session treats an empty first name as signed out.
func (r *UserResolver) requiredNonEmpty(expr string, data any) (string, error) {
	s, err := r.requiredString(expr, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", apperrors.MalformedProfile(expr, nil)
	}
	return s, nil
}

func (r *UserResolver) optionalString(expr string, data any) (string, bool) {
	v, err := r.jems.Evaluate(expr, data)
	if err != nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// roleClaims accepts roles as a list of names or as an object keyed by role name.
// Entries that are not strings are ignored.
func (r *UserResolver) roleClaims(doc any) ([]string, error) {
	v, err := r.jems.Evaluate(exprRoles, doc)
	if err != nil {
		return nil, apperrors.MalformedProfile(exprRoles, err)
	}
	switch roles := v.(type) {
	case []any:
		out := make([]string, 0, len(roles))
		for _, item := range roles {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, nil
	case map[string]any:
		out := make([]string, 0, len(roles))
		for name := range roles {
			out = append(out, name)
		}
		slices.Sort(out)
		return out, nil
	default:
		return nil, apperrors.MalformedProfile(exprRoles, nil)
	}
}
