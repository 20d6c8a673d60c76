package projects

import "github.com/ethpandaops/glprojects/pkg/request"

// AccessLevel is a GitLab member permission level.
type AccessLevel int

// Access levels.
const (
	GuestAccess     AccessLevel = 10
	ReporterAccess  AccessLevel = 20
	DeveloperAccess AccessLevel = 30
	MasterAccess    AccessLevel = 40
	OwnerAccess     AccessLevel = 50
)

// ListProjectsOptions pages and orders a project list. Unset fields take the
// list defaults.
type ListProjectsOptions struct {
	request.ListOptions
	request.SortOptions
}

// StarredOptions filters the starred project list.
type StarredOptions struct {
	request.ListOptions
	request.SortOptions

	Archived   *bool   `url:"archived,omitempty"`
	Visibility *string `url:"visibility,omitempty"`
	Search     *string `url:"search,omitempty"`
}

// CreateOptions are the optional fields of project creation. Extra carries
// any other field GitLab accepts; typed fields and the name argument win over
// Extra entries with the same key.
type CreateOptions struct {
	Path                 *string `url:"path,omitempty"`
	NamespaceID          *int    `url:"namespace_id,omitempty"`
	Description          *string `url:"description,omitempty"`
	IssuesEnabled        *bool   `url:"issues_enabled,omitempty"`
	MergeRequestsEnabled *bool   `url:"merge_requests_enabled,omitempty"`
	BuildsEnabled        *bool   `url:"builds_enabled,omitempty"`
	WikiEnabled          *bool   `url:"wiki_enabled,omitempty"`
	SnippetsEnabled      *bool   `url:"snippets_enabled,omitempty"`
	Public               *bool   `url:"public,omitempty"`
	VisibilityLevel      *int    `url:"visibility_level,omitempty"`
	Visibility           *string `url:"visibility,omitempty"`
	ImportURL            *string `url:"import_url,omitempty"`

	Extra map[string]any `url:"-"`
}

// UpdateOptions are the fields of a project update.
type UpdateOptions struct {
	Name                 *string `url:"name,omitempty"`
	Path                 *string `url:"path,omitempty"`
	Description          *string `url:"description,omitempty"`
	DefaultBranch        *string `url:"default_branch,omitempty"`
	IssuesEnabled        *bool   `url:"issues_enabled,omitempty"`
	MergeRequestsEnabled *bool   `url:"merge_requests_enabled,omitempty"`
	BuildsEnabled        *bool   `url:"builds_enabled,omitempty"`
	WikiEnabled          *bool   `url:"wiki_enabled,omitempty"`
	SnippetsEnabled      *bool   `url:"snippets_enabled,omitempty"`
	Public               *bool   `url:"public,omitempty"`
	VisibilityLevel      *int    `url:"visibility_level,omitempty"`
	Visibility           *string `url:"visibility,omitempty"`

	Extra map[string]any `url:"-"`
}

// HookOptions select the events a project hook fires on. A hook created with
// no options at all fires on push events only.
type HookOptions struct {
	PushEvents            *bool   `url:"push_events,omitempty"`
	IssuesEvents          *bool   `url:"issues_events,omitempty"`
	MergeRequestsEvents   *bool   `url:"merge_requests_events,omitempty"`
	TagPushEvents         *bool   `url:"tag_push_events,omitempty"`
	NoteEvents            *bool   `url:"note_events,omitempty"`
	BuildEvents           *bool   `url:"build_events,omitempty"`
	PipelineEvents        *bool   `url:"pipeline_events,omitempty"`
	WikiPageEvents        *bool   `url:"wiki_page_events,omitempty"`
	EnableSSLVerification *bool   `url:"enable_ssl_verification,omitempty"`
	Token                 *string `url:"token,omitempty"`
	URL                   *string `url:"url,omitempty"`

	Extra map[string]any `url:"-"`
}

// LabelOptions describe a label to add or update.
type LabelOptions struct {
	Name        *string `url:"name,omitempty"`
	NewName     *string `url:"new_name,omitempty"`
	Color       *string `url:"color,omitempty"`
	Description *string `url:"description,omitempty"`

	Extra map[string]any `url:"-"`
}

// ServiceOptions are the settings of a project service. Every service takes
// different fields, so the bag is passed through as-is.
type ServiceOptions map[string]any

// StatusOptions are the optional fields of a commit status.
type StatusOptions struct {
	Ref         *string  `url:"ref,omitempty"`
	Name        *string  `url:"name,omitempty"`
	Context     *string  `url:"context,omitempty"`
	TargetURL   *string  `url:"target_url,omitempty"`
	Description *string  `url:"description,omitempty"`
	Coverage    *float64 `url:"coverage,omitempty"`

	Extra map[string]any `url:"-"`
}

// ForkOptions choose where a fork is created.
type ForkOptions struct {
	// Namespace is the ID or path of the target namespace.
	Namespace *string `url:"namespace,omitempty"`
}

// ShareOptions are the optional fields of sharing a project with a group.
type ShareOptions struct {
	ExpiresAt *string `url:"expires_at,omitempty"`
}

func (o *CreateOptions) extra() map[string]any {
	if o == nil {
		return nil
	}

	return o.Extra
}

func (o *UpdateOptions) extra() map[string]any {
	if o == nil {
		return nil
	}

	return o.Extra
}

func (o *HookOptions) extra() map[string]any {
	if o == nil {
		return nil
	}

	return o.Extra
}

func (o *LabelOptions) extra() map[string]any {
	if o == nil {
		return nil
	}

	return o.Extra
}

func (o *StatusOptions) extra() map[string]any {
	if o == nil {
		return nil
	}

	return o.Extra
}
