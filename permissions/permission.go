package permissions

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"rental/shared/principal"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one route pattern. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Open reports whether the route needs no role check.
func (p Permission) Open() bool {
	return p.Skip || len(p.Permissions) == 0
}

func (p Permission) Allows(role principal.Role) bool {
	if p.Open() {
		return true
	}

	for _, allowed := range p.Permissions {
		if principal.ParseRole(allowed) == role && role != principal.RoleUnknown {
			return true
		}
	}

	return false
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry for a chi route pattern, or the zero value.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		r.buildIndex()
	}

	return r.index[routeKey(method, path)]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		for _, role := range endpoint.Permissions {
			if principal.ParseRole(role) == principal.RoleUnknown {
				log.Warn().Str("path", endpoint.Path).Str("role", role).Msg("unknown role in permissions")
			}
		}

		method := endpoint.Method
		if method == "" {
			method = http.MethodGet
		}

		r.index[routeKey(method, endpoint.Path)] = endpoint
	}
}

func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.buildIndex()

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Loaded embedded permissions")

	return &permissions
}
