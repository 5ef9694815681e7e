// Package tenant resolves the organization scope for each request from
// the host header (subdomain-based tenancy) or an explicit override
// header.
//
// Resolution failure is recoverable: when no organization matches, the
// request proceeds with an empty scope and handlers degrade gracefully
// (empty lists, or a reported configuration error); it is never fatal
// at the middleware layer.
package tenant

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/nexohub/internal/app/system/timeouts"
	"github.com/dalemusser/nexohub/internal/domain/models"
	"go.uber.org/zap"
)

// OverrideHeader names the organization slug directly, bypassing
// host-based inference. When present it always wins.
const OverrideHeader = "X-Org-Slug"

// tenantPrefixes are first labels that mark "the tenant is the next
// label": app.acme.example.com and inscripcion.acme.example.com both
// belong to acme.
var tenantPrefixes = map[string]struct{}{
	"app":         {},
	"inscripcion": {},
}

type ctxKey string

const tenantKey ctxKey = "tenant"

// Info is the resolved tenant scope for a request. Org is nil when the
// slug did not match any organization.
type Info struct {
	Slug string
	Org  *models.Organization
}

// OrgLookup resolves a slug to an organization.
type OrgLookup interface {
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
}

// SlugFromHost derives an organization slug from a host header value.
//
// Rules: strip the port; any localhost host resolves to the default
// slug; a tenant-prefix first label with at least two labels yields the
// second label; otherwise the first label, or the default when empty.
func SlugFromHost(host, defaultSlug string) string {
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	if strings.Contains(host, "localhost") {
		return defaultSlug
	}

	labels := strings.Split(host, ".")
	if _, ok := tenantPrefixes[labels[0]]; ok && len(labels) >= 2 {
		return labels[1]
	}
	if labels[0] == "" {
		return defaultSlug
	}
	return labels[0]
}

// Middleware resolves the tenant for every request and stores it in the
// request context. The override header beats host inference.
func Middleware(lookup OrgLookup, defaultSlug string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := strings.TrimSpace(r.Header.Get(OverrideHeader))
			if slug == "" {
				slug = SlugFromHost(r.Host, defaultSlug)
			}

			info := &Info{Slug: slug}

			ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
			org, err := lookup.GetBySlug(ctx, slug)
			cancel()
			if err != nil {
				logger.Debug("tenant not resolved",
					zap.String("slug", slug),
					zap.Error(err))
			} else {
				info.Org = org
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), tenantKey, info)))
		})
	}
}

// FromRequest returns the tenant info set by Middleware, or nil.
func FromRequest(r *http.Request) *Info {
	if info, ok := r.Context().Value(tenantKey).(*Info); ok {
		return info
	}
	return nil
}

// OrgFromRequest returns the resolved organization, if any.
func OrgFromRequest(r *http.Request) (*models.Organization, bool) {
	info := FromRequest(r)
	if info == nil || info.Org == nil {
		return nil, false
	}
	return info.Org, true
}

// WithTestOrg injects a resolved organization into a request's context.
// Test helper; production code must rely on Middleware.
func WithTestOrg(r *http.Request, org *models.Organization) *http.Request {
	info := &Info{Org: org}
	if org != nil {
		info.Slug = org.Slug
	}
	return r.WithContext(context.WithValue(r.Context(), tenantKey, info))
}
