package projects

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ethpandaops/glprojects/pkg/request"
)

// Builder maps each projects API operation to a request descriptor. It holds
// no state; the zero value is ready to use and safe for concurrent use.
type Builder struct{}

// All lists every project (admin only).
func (Builder) All(opts *ListProjectsOptions) (*request.Request, error) {
	return listRequest("projects/all", opts)
}

// Accessible lists the projects the authenticated user can access.
func (Builder) Accessible(opts *ListProjectsOptions) (*request.Request, error) {
	return listRequest("projects", opts)
}

// Owned lists the projects owned by the authenticated user.
func (Builder) Owned(opts *ListProjectsOptions) (*request.Request, error) {
	return listRequest("projects/owned", opts)
}

// Starred lists the projects starred by the authenticated user.
func (Builder) Starred(opts *StarredOptions) (*request.Request, error) {
	var o StarredOptions
	if opts != nil {
		o = *opts
	}

	o.ListOptions = o.ListOptions.WithDefaults()
	o.SortOptions = o.SortOptions.WithDefaults()

	return get(request.NewPath("projects/starred"), &o)
}

// Search lists projects whose name matches query.
func (Builder) Search(query string, opts *ListProjectsOptions) (*request.Request, error) {
	return listRequestAt(request.NewPath("projects/search").ID("query", query), opts)
}

// Show fetches a single project.
func (Builder) Show(projectID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID), nil)
}

// Create creates a project owned by the authenticated user.
func (Builder) Create(name string, opts *CreateOptions) (*request.Request, error) {
	if err := request.Required("name", name); err != nil {
		return nil, err
	}

	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	request.Set(params, "name", name)

	return build(http.MethodPost, request.NewPath("projects"), params)
}

// CreateForUser creates a project on behalf of a user (admin only).
func (Builder) CreateForUser(userID any, name string, opts *CreateOptions) (*request.Request, error) {
	if err := request.Required("name", name); err != nil {
		return nil, err
	}

	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	request.Set(params, "name", name)

	return build(http.MethodPost, request.NewPath("projects/user").ID("user_id", userID), params)
}

// Update changes project settings.
func (Builder) Update(projectID any, opts *UpdateOptions) (*request.Request, error) {
	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPut, request.ProjectPath(projectID), params)
}

// Remove deletes a project.
func (Builder) Remove(projectID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID), nil)
}

// Fork forks a project into the user's namespace, or opts.Namespace.
func (Builder) Fork(projectID any, opts *ForkOptions) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("fork"), opts)
}

// ForkByAdmin forks a project through the top-level admin fork endpoint.
func (Builder) ForkByAdmin(projectID any, opts *ForkOptions) (*request.Request, error) {
	return post(request.NewPath("projects/fork").ID("project_id", projectID), opts)
}

// Star stars a project.
func (Builder) Star(projectID any) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("star"), nil)
}

// Unstar removes the star from a project.
func (Builder) Unstar(projectID any) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("unstar"), nil)
}

// Archive archives a project.
func (Builder) Archive(projectID any) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("archive"), nil)
}

// Unarchive unarchives a project.
func (Builder) Unarchive(projectID any) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("unarchive"), nil)
}

// Share shares a project with a group.
func (Builder) Share(projectID, groupID any, access AccessLevel, opts *ShareOptions) (*request.Request, error) {
	if access <= 0 {
		return nil, fmt.Errorf("%w: group_access is required", request.ErrInvalidArgument)
	}

	group, err := request.FormatID(groupID)
	if err != nil {
		return nil, fmt.Errorf("group_id: %w", err)
	}

	params, err := request.Encode(opts, nil)
	if err != nil {
		return nil, err
	}

	params.Set("group_id", group)
	params.Set("group_access", strconv.Itoa(int(access)))

	return build(http.MethodPost, request.ProjectPath(projectID).Static("share"), params)
}

// Unshare removes a group share from a project.
func (Builder) Unshare(projectID, groupID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("share").ID("group_id", groupID), nil)
}

// Upload uploads a local file to the project for use in issues and comments.
func (Builder) Upload(projectID any, filePath string) (*request.Request, error) {
	if err := request.Required("file", filePath); err != nil {
		return nil, err
	}

	req, err := build(http.MethodPost, request.ProjectPath(projectID).Static("uploads"), nil)
	if err != nil {
		return nil, err
	}

	req.Files = map[string]string{"file": filePath}

	return req, nil
}

// Builds lists project builds, optionally restricted to scope.
func (Builder) Builds(projectID any, scope ...string) (*request.Request, error) {
	params := url.Values{}
	for _, s := range scope {
		if s != "" {
			params.Add("scope[]", s)
		}
	}

	return build(http.MethodGet, request.ProjectPath(projectID).Static("builds"), params)
}

// Build fetches a single build.
func (Builder) Build(projectID, buildID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("builds").ID("build_id", buildID), nil)
}

// Trace fetches the log of a build.
func (Builder) Trace(projectID, buildID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("builds").ID("build_id", buildID).Static("trace"), nil)
}

// Members lists project members. A nil usernameQuery lists everyone.
func (Builder) Members(projectID any, usernameQuery *string) (*request.Request, error) {
	params := url.Values{}
	if usernameQuery != nil {
		params.Set("query", *usernameQuery)
	}

	return build(http.MethodGet, request.ProjectPath(projectID).Static("members"), params)
}

// Member fetches a single project member.
func (Builder) Member(projectID, userID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("members").ID("user_id", userID), nil)
}

// AddMember adds a user to the project.
func (Builder) AddMember(projectID, userID any, access AccessLevel) (*request.Request, error) {
	if access <= 0 {
		return nil, fmt.Errorf("%w: access_level is required", request.ErrInvalidArgument)
	}

	user, err := request.FormatID(userID)
	if err != nil {
		return nil, fmt.Errorf("user_id: %w", err)
	}

	params := url.Values{}
	params.Set("user_id", user)
	params.Set("access_level", strconv.Itoa(int(access)))

	return build(http.MethodPost, request.ProjectPath(projectID).Static("members"), params)
}

// SaveMember changes the access level of a project member.
func (Builder) SaveMember(projectID, userID any, access AccessLevel) (*request.Request, error) {
	if access <= 0 {
		return nil, fmt.Errorf("%w: access_level is required", request.ErrInvalidArgument)
	}

	params := url.Values{}
	params.Set("access_level", strconv.Itoa(int(access)))

	return build(http.MethodPut, request.ProjectPath(projectID).Static("members").ID("user_id", userID), params)
}

// RemoveMember removes a user from the project.
func (Builder) RemoveMember(projectID, userID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("members").ID("user_id", userID), nil)
}

// Hooks lists project hooks.
func (Builder) Hooks(projectID any, opts *request.ListOptions) (*request.Request, error) {
	return pagedRequest(request.ProjectPath(projectID).Static("hooks"), opts)
}

// Hook fetches a single project hook.
func (Builder) Hook(projectID, hookID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("hooks").ID("hook_id", hookID), nil)
}

// AddHook adds a hook. Without any options the hook fires on push events
// only. A bag entry counts as an option even when its value is nil.
func (Builder) AddHook(projectID any, hookURL string, opts *HookOptions) (*request.Request, error) {
	if err := request.Required("url", hookURL); err != nil {
		return nil, err
	}

	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 && len(opts.extra()) == 0 {
		params.Set("push_events", "true")
	}

	request.Set(params, "url", hookURL)

	return build(http.MethodPost, request.ProjectPath(projectID).Static("hooks"), params)
}

// UpdateHook changes a project hook.
func (Builder) UpdateHook(projectID, hookID any, opts *HookOptions) (*request.Request, error) {
	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPut, request.ProjectPath(projectID).Static("hooks").ID("hook_id", hookID), params)
}

// RemoveHook deletes a project hook.
func (Builder) RemoveHook(projectID, hookID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("hooks").ID("hook_id", hookID), nil)
}

// Keys lists deploy keys.
func (Builder) Keys(projectID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("keys"), nil)
}

// Key fetches a single deploy key.
func (Builder) Key(projectID, keyID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("keys").ID("key_id", keyID), nil)
}

// AddKey adds a deploy key.
func (Builder) AddKey(projectID any, title, key string) (*request.Request, error) {
	if err := request.Required("title", title); err != nil {
		return nil, err
	}

	if err := request.Required("key", key); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("title", title)
	params.Set("key", key)

	return build(http.MethodPost, request.ProjectPath(projectID).Static("keys"), params)
}

// RemoveKey deletes a deploy key.
func (Builder) RemoveKey(projectID, keyID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("keys").ID("key_id", keyID), nil)
}

// Events lists project events.
func (Builder) Events(projectID any, opts *request.ListOptions) (*request.Request, error) {
	return pagedRequest(request.ProjectPath(projectID).Static("events"), opts)
}

// Labels lists project labels.
func (Builder) Labels(projectID any) (*request.Request, error) {
	return get(request.ProjectPath(projectID).Static("labels"), nil)
}

// AddLabel creates a label.
func (Builder) AddLabel(projectID any, opts *LabelOptions) (*request.Request, error) {
	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPost, request.ProjectPath(projectID).Static("labels"), params)
}

// UpdateLabel changes a label, selected by opts.Name.
func (Builder) UpdateLabel(projectID any, opts *LabelOptions) (*request.Request, error) {
	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPut, request.ProjectPath(projectID).Static("labels"), params)
}

// RemoveLabel deletes a label by name.
func (Builder) RemoveLabel(projectID any, name string) (*request.Request, error) {
	if err := request.Required("name", name); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("name", name)

	return build(http.MethodDelete, request.ProjectPath(projectID).Static("labels"), params)
}

// CreateForkRelation marks projectID as a fork of forkedFromID (admin only).
func (Builder) CreateForkRelation(projectID, forkedFromID any) (*request.Request, error) {
	return post(request.ProjectPath(projectID).Static("fork").ID("forked_from_id", forkedFromID), nil)
}

// RemoveForkRelation removes the fork relation of a project.
func (Builder) RemoveForkRelation(projectID any) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("fork"), nil)
}

// SetService configures a project service such as "slack" or "jira".
func (Builder) SetService(projectID any, serviceName string, opts ServiceOptions) (*request.Request, error) {
	params, err := request.Encode(nil, opts)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPut, request.ProjectPath(projectID).Static("services").ID("service_name", serviceName), params)
}

// RemoveService disables a project service.
func (Builder) RemoveService(projectID any, serviceName string) (*request.Request, error) {
	return build(http.MethodDelete, request.ProjectPath(projectID).Static("services").ID("service_name", serviceName), nil)
}

// CreateStatus sets the build status of a commit. The state argument always
// wins over a "state" entry in opts.Extra.
func (Builder) CreateStatus(projectID any, sha, state string, opts *StatusOptions) (*request.Request, error) {
	if err := request.Required("state", state); err != nil {
		return nil, err
	}

	params, err := encodeBag(opts)
	if err != nil {
		return nil, err
	}

	request.Set(params, "state", state)

	return build(http.MethodPost, request.ProjectPath(projectID).Static("statuses").ID("sha", sha), params)
}

func listRequest(path string, opts *ListProjectsOptions) (*request.Request, error) {
	return listRequestAt(request.NewPath(path), opts)
}

func listRequestAt(path *request.Path, opts *ListProjectsOptions) (*request.Request, error) {
	var o ListProjectsOptions
	if opts != nil {
		o = *opts
	}

	o.ListOptions = o.ListOptions.WithDefaults()
	o.SortOptions = o.SortOptions.WithDefaults()

	return get(path, &o)
}

func pagedRequest(path *request.Path, opts *request.ListOptions) (*request.Request, error) {
	var o request.ListOptions
	if opts != nil {
		o = *opts
	}

	o = o.WithDefaults()

	return get(path, &o)
}

func get(path *request.Path, opts any) (*request.Request, error) {
	params, err := request.Encode(opts, nil)
	if err != nil {
		return nil, err
	}

	return build(http.MethodGet, path, params)
}

func post(path *request.Path, opts any) (*request.Request, error) {
	params, err := request.Encode(opts, nil)
	if err != nil {
		return nil, err
	}

	return build(http.MethodPost, path, params)
}

func build(method string, path *request.Path, params url.Values) (*request.Request, error) {
	p, err := path.Build()
	if err != nil {
		return nil, err
	}

	return request.New(method, p, params), nil
}

// bagCarrier is implemented by option structs with a free-form Extra bag.
type bagCarrier interface {
	extra() map[string]any
}

// encodeBag encodes typed fields over the Extra bag. A nil options pointer
// encodes to an empty set.
func encodeBag(opts bagCarrier) (url.Values, error) {
	return request.Encode(opts, opts.extra())
}
