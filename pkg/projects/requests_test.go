package projects

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/ethpandaops/glprojects/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDefaults() url.Values {
	return url.Values{
		"page":     {"1"},
		"per_page": {"20"},
		"order_by": {"created_at"},
		"sort":     {"asc"},
	}
}

func TestBuilder_ListDefaults(t *testing.T) {
	var b Builder

	tests := []struct {
		name  string
		build func() (*request.Request, error)
		path  string
	}{
		{name: "all", build: func() (*request.Request, error) { return b.All(nil) }, path: "projects/all"},
		{name: "accessible", build: func() (*request.Request, error) { return b.Accessible(nil) }, path: "projects"},
		{name: "owned", build: func() (*request.Request, error) { return b.Owned(nil) }, path: "projects/owned"},
		{name: "starred", build: func() (*request.Request, error) { return b.Starred(nil) }, path: "projects/starred"},
		{
			name:  "search",
			build: func() (*request.Request, error) { return b.Search("gitlab", nil) },
			path:  "projects/search/gitlab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.build()
			require.NoError(t, err)

			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, listDefaults(), req.Query)
			assert.Nil(t, req.Body)
		})
	}
}

func TestBuilder_ListPartialOverride(t *testing.T) {
	var b Builder

	tests := []struct {
		name   string
		opts   *ListProjectsOptions
		expect url.Values
	}{
		{
			name: "page only",
			opts: &ListProjectsOptions{ListOptions: request.ListOptions{Page: request.Ptr(3)}},
			expect: url.Values{
				"page": {"3"}, "per_page": {"20"}, "order_by": {"created_at"}, "sort": {"asc"},
			},
		},
		{
			name: "per_page only",
			opts: &ListProjectsOptions{ListOptions: request.ListOptions{PerPage: request.Ptr(100)}},
			expect: url.Values{
				"page": {"1"}, "per_page": {"100"}, "order_by": {"created_at"}, "sort": {"asc"},
			},
		},
		{
			name: "order_by only",
			opts: &ListProjectsOptions{SortOptions: request.SortOptions{OrderBy: request.Ptr("name")}},
			expect: url.Values{
				"page": {"1"}, "per_page": {"20"}, "order_by": {"name"}, "sort": {"asc"},
			},
		},
		{
			name: "sort only",
			opts: &ListProjectsOptions{SortOptions: request.SortOptions{Sort: request.Ptr("desc")}},
			expect: url.Values{
				"page": {"1"}, "per_page": {"20"}, "order_by": {"created_at"}, "sort": {"desc"},
			},
		},
		{
			name: "everything",
			opts: &ListProjectsOptions{
				ListOptions: request.ListOptions{Page: request.Ptr(2), PerPage: request.Ptr(5)},
				SortOptions: request.SortOptions{OrderBy: request.Ptr("last_activity_at"), Sort: request.Ptr("desc")},
			},
			expect: url.Values{
				"page": {"2"}, "per_page": {"5"}, "order_by": {"last_activity_at"}, "sort": {"desc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := b.Accessible(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, req.Query)
		})
	}
}

func TestBuilder_ListDoesNotMutateOptions(t *testing.T) {
	var b Builder

	opts := &ListProjectsOptions{}

	_, err := b.All(opts)
	require.NoError(t, err)

	assert.Nil(t, opts.Page)
	assert.Nil(t, opts.PerPage)
	assert.Nil(t, opts.OrderBy)
	assert.Nil(t, opts.Sort)
}

func TestBuilder_StarredFilters(t *testing.T) {
	var b Builder

	req, err := b.Starred(&StarredOptions{
		Archived: request.Ptr(false),
		Search:   request.Ptr("ops"),
	})
	require.NoError(t, err)

	expect := listDefaults()
	expect.Set("archived", "false")
	expect.Set("search", "ops")

	assert.Equal(t, expect, req.Query)
}

func TestBuilder_PagedDefaults(t *testing.T) {
	var b Builder

	hooks, err := b.Hooks(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "projects/1/hooks", hooks.Path)
	assert.Equal(t, url.Values{"page": {"1"}, "per_page": {"20"}}, hooks.Query)

	events, err := b.Events("group/proj", &request.ListOptions{PerPage: request.Ptr(50)})
	require.NoError(t, err)
	assert.Equal(t, "projects/group%2Fproj/events", events.Path)
	assert.Equal(t, url.Values{"page": {"1"}, "per_page": {"50"}}, events.Query)
}

func TestBuilder_ShowEncodesPath(t *testing.T) {
	var b Builder

	req, err := b.Show("group/proj")
	require.NoError(t, err)
	assert.Equal(t, "projects/group%2Fproj", req.Path)
	assert.Empty(t, req.Query)

	req, err = b.Show(42)
	require.NoError(t, err)
	assert.Equal(t, "projects/42", req.Path)
}

func TestBuilder_MembersQuery(t *testing.T) {
	var b Builder

	req, err := b.Members(1, nil)
	require.NoError(t, err)
	assert.Equal(t, "projects/1/members", req.Path)
	assert.NotContains(t, req.Query, "query")

	req, err = b.Members(1, request.Ptr("sam"))
	require.NoError(t, err)
	assert.Equal(t, url.Values{"query": {"sam"}}, req.Query)
}

func TestBuilder_AddHook(t *testing.T) {
	var b Builder

	t.Run("no options fires on push", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", nil)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "projects/1/hooks", req.Path)
		assert.Equal(t, url.Values{"push_events": {"true"}, "url": {"http://hook.example"}}, req.Body)
	})

	t.Run("empty options fire on push", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"push_events": {"true"}, "url": {"http://hook.example"}}, req.Body)
	})

	t.Run("explicit options", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{IssuesEvents: request.Ptr(true)})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"issues_events": {"true"}, "url": {"http://hook.example"}}, req.Body)
	})

	t.Run("nil bag entry counts as an option", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{Extra: map[string]any{"issues_events": nil}})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"url": {"http://hook.example"}}, req.Body)
	})

	t.Run("empty bag fires on push", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{Extra: map[string]any{}})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"push_events": {"true"}, "url": {"http://hook.example"}}, req.Body)
	})

	t.Run("url argument wins over bag array", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{
			IssuesEvents: request.Ptr(true),
			Extra:        map[string]any{"url": []string{"http://other"}},
		})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"issues_events": {"true"}, "url": {"http://hook.example"}}, req.Body)
	})

	t.Run("url argument wins", func(t *testing.T) {
		req, err := b.AddHook(1, "http://hook.example", &HookOptions{URL: request.Ptr("http://other")})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"url": {"http://hook.example"}}, req.Body)
	})

	t.Run("url required", func(t *testing.T) {
		_, err := b.AddHook(1, "", nil)
		assert.ErrorIs(t, err, request.ErrInvalidArgument)
	})
}

func TestBuilder_CreateStatusStatePrecedence(t *testing.T) {
	var b Builder

	tests := []struct {
		name  string
		state any
	}{
		{name: "scalar", state: "ignored"},
		{name: "array", state: []string{"ignored", "also ignored"}},
		{name: "map", state: map[string]any{"value": "ignored"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := b.CreateStatus(5, "abc123", "success", &StatusOptions{
				TargetURL: request.Ptr("http://x"),
				Extra:     map[string]any{"state": tt.state},
			})
			require.NoError(t, err)

			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "projects/5/statuses/abc123", req.Path)
			assert.Equal(t, url.Values{"state": {"success"}, "target_url": {"http://x"}}, req.Body)
		})
	}
}

func TestBuilder_CreateNameWins(t *testing.T) {
	var b Builder

	req, err := b.Create("tools", &CreateOptions{
		Description: request.Ptr("internal tooling"),
		Extra:       map[string]any{"name": "other", "container_registry_enabled": true, "unset": nil},
	})
	require.NoError(t, err)

	assert.Equal(t, "projects", req.Path)
	assert.Equal(t, url.Values{
		"name":                       {"tools"},
		"description":                {"internal tooling"},
		"container_registry_enabled": {"true"},
	}, req.Body)
}

func TestBuilder_CreateNameWinsOverBagArray(t *testing.T) {
	var b Builder

	req, err := b.Create("tools", &CreateOptions{Extra: map[string]any{"name": []string{"x"}}})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"name": {"tools"}}, req.Body)

	req, err = b.CreateForUser(7, "tools", &CreateOptions{Extra: map[string]any{"name[]": "x"}})
	require.NoError(t, err)
	assert.Equal(t, url.Values{"name": {"tools"}}, req.Body)
}

func TestBuilder_Idempotent(t *testing.T) {
	var b Builder

	opts := &ListProjectsOptions{SortOptions: request.SortOptions{Sort: request.Ptr("desc")}}

	first, err := b.Accessible(opts)
	require.NoError(t, err)

	second, err := b.Accessible(opts)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, first, second)
}

func TestBuilder_Routes(t *testing.T) {
	var b Builder

	tests := []struct {
		name   string
		build  func() (*request.Request, error)
		method string
		path   string
		params url.Values
	}{
		{
			name:   "create for user",
			build:  func() (*request.Request, error) { return b.CreateForUser(7, "svc", nil) },
			method: http.MethodPost, path: "projects/user/7", params: url.Values{"name": {"svc"}},
		},
		{
			name: "update",
			build: func() (*request.Request, error) {
				return b.Update(1, &UpdateOptions{DefaultBranch: request.Ptr("main")})
			},
			method: http.MethodPut, path: "projects/1", params: url.Values{"default_branch": {"main"}},
		},
		{
			name:   "remove",
			build:  func() (*request.Request, error) { return b.Remove("a/b") },
			method: http.MethodDelete, path: "projects/a%2Fb", params: url.Values{},
		},
		{
			name:   "fork",
			build:  func() (*request.Request, error) { return b.Fork(1, &ForkOptions{Namespace: request.Ptr("team")}) },
			method: http.MethodPost, path: "projects/1/fork", params: url.Values{"namespace": {"team"}},
		},
		{
			name:   "fork by admin",
			build:  func() (*request.Request, error) { return b.ForkByAdmin(1, nil) },
			method: http.MethodPost, path: "projects/fork/1", params: url.Values{},
		},
		{
			name:   "star",
			build:  func() (*request.Request, error) { return b.Star(1) },
			method: http.MethodPost, path: "projects/1/star", params: url.Values{},
		},
		{
			name:   "unstar",
			build:  func() (*request.Request, error) { return b.Unstar(1) },
			method: http.MethodPost, path: "projects/1/unstar", params: url.Values{},
		},
		{
			name:   "archive",
			build:  func() (*request.Request, error) { return b.Archive(1) },
			method: http.MethodPost, path: "projects/1/archive", params: url.Values{},
		},
		{
			name:   "unarchive",
			build:  func() (*request.Request, error) { return b.Unarchive(1) },
			method: http.MethodPost, path: "projects/1/unarchive", params: url.Values{},
		},
		{
			name: "share",
			build: func() (*request.Request, error) {
				return b.Share(1, 9, DeveloperAccess, &ShareOptions{ExpiresAt: request.Ptr("2027-01-01")})
			},
			method: http.MethodPost, path: "projects/1/share",
			params: url.Values{"group_id": {"9"}, "group_access": {"30"}, "expires_at": {"2027-01-01"}},
		},
		{
			name:   "unshare",
			build:  func() (*request.Request, error) { return b.Unshare(1, 9) },
			method: http.MethodDelete, path: "projects/1/share/9", params: url.Values{},
		},
		{
			name:   "builds",
			build:  func() (*request.Request, error) { return b.Builds(1, "failed", "", "success") },
			method: http.MethodGet, path: "projects/1/builds", params: url.Values{"scope[]": {"failed", "success"}},
		},
		{
			name:   "build",
			build:  func() (*request.Request, error) { return b.Build(1, 3) },
			method: http.MethodGet, path: "projects/1/builds/3", params: url.Values{},
		},
		{
			name:   "trace",
			build:  func() (*request.Request, error) { return b.Trace(1, 3) },
			method: http.MethodGet, path: "projects/1/builds/3/trace", params: url.Values{},
		},
		{
			name:   "member",
			build:  func() (*request.Request, error) { return b.Member(1, 2) },
			method: http.MethodGet, path: "projects/1/members/2", params: url.Values{},
		},
		{
			name:   "add member",
			build:  func() (*request.Request, error) { return b.AddMember(1, 2, ReporterAccess) },
			method: http.MethodPost, path: "projects/1/members",
			params: url.Values{"user_id": {"2"}, "access_level": {"20"}},
		},
		{
			name:   "save member",
			build:  func() (*request.Request, error) { return b.SaveMember(1, 2, MasterAccess) },
			method: http.MethodPut, path: "projects/1/members/2", params: url.Values{"access_level": {"40"}},
		},
		{
			name:   "remove member",
			build:  func() (*request.Request, error) { return b.RemoveMember(1, 2) },
			method: http.MethodDelete, path: "projects/1/members/2", params: url.Values{},
		},
		{
			name:   "hook",
			build:  func() (*request.Request, error) { return b.Hook(1, 4) },
			method: http.MethodGet, path: "projects/1/hooks/4", params: url.Values{},
		},
		{
			name: "update hook",
			build: func() (*request.Request, error) {
				return b.UpdateHook(1, 4, &HookOptions{PushEvents: request.Ptr(false)})
			},
			method: http.MethodPut, path: "projects/1/hooks/4", params: url.Values{"push_events": {"false"}},
		},
		{
			name:   "remove hook",
			build:  func() (*request.Request, error) { return b.RemoveHook(1, 4) },
			method: http.MethodDelete, path: "projects/1/hooks/4", params: url.Values{},
		},
		{
			name:   "keys",
			build:  func() (*request.Request, error) { return b.Keys(1) },
			method: http.MethodGet, path: "projects/1/keys", params: url.Values{},
		},
		{
			name:   "key",
			build:  func() (*request.Request, error) { return b.Key(1, 6) },
			method: http.MethodGet, path: "projects/1/keys/6", params: url.Values{},
		},
		{
			name:   "add key",
			build:  func() (*request.Request, error) { return b.AddKey(1, "deploy", "ssh-ed25519 AAAA") },
			method: http.MethodPost, path: "projects/1/keys",
			params: url.Values{"title": {"deploy"}, "key": {"ssh-ed25519 AAAA"}},
		},
		{
			name:   "remove key",
			build:  func() (*request.Request, error) { return b.RemoveKey(1, 6) },
			method: http.MethodDelete, path: "projects/1/keys/6", params: url.Values{},
		},
		{
			name:   "labels",
			build:  func() (*request.Request, error) { return b.Labels(1) },
			method: http.MethodGet, path: "projects/1/labels", params: url.Values{},
		},
		{
			name: "add label",
			build: func() (*request.Request, error) {
				return b.AddLabel(1, &LabelOptions{Name: request.Ptr("bug"), Color: request.Ptr("#FF0000")})
			},
			method: http.MethodPost, path: "projects/1/labels",
			params: url.Values{"name": {"bug"}, "color": {"#FF0000"}},
		},
		{
			name: "update label",
			build: func() (*request.Request, error) {
				return b.UpdateLabel(1, &LabelOptions{Name: request.Ptr("bug"), NewName: request.Ptr("defect")})
			},
			method: http.MethodPut, path: "projects/1/labels",
			params: url.Values{"name": {"bug"}, "new_name": {"defect"}},
		},
		{
			name:   "remove label",
			build:  func() (*request.Request, error) { return b.RemoveLabel(1, "bug") },
			method: http.MethodDelete, path: "projects/1/labels", params: url.Values{"name": {"bug"}},
		},
		{
			name:   "create fork relation",
			build:  func() (*request.Request, error) { return b.CreateForkRelation(1, 8) },
			method: http.MethodPost, path: "projects/1/fork/8", params: url.Values{},
		},
		{
			name:   "remove fork relation",
			build:  func() (*request.Request, error) { return b.RemoveForkRelation(1) },
			method: http.MethodDelete, path: "projects/1/fork", params: url.Values{},
		},
		{
			name: "set service",
			build: func() (*request.Request, error) {
				return b.SetService(1, "slack", ServiceOptions{"webhook": "http://slack", "username": nil})
			},
			method: http.MethodPut, path: "projects/1/services/slack", params: url.Values{"webhook": {"http://slack"}},
		},
		{
			name:   "remove service",
			build:  func() (*request.Request, error) { return b.RemoveService(1, "slack") },
			method: http.MethodDelete, path: "projects/1/services/slack", params: url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.build()
			require.NoError(t, err)

			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.path, req.Path)
			assert.Equal(t, tt.params, req.Params())
		})
	}
}

func TestBuilder_Upload(t *testing.T) {
	var b Builder

	req, err := b.Upload(1, "/tmp/screenshot.png")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "projects/1/uploads", req.Path)
	assert.Equal(t, map[string]string{"file": "/tmp/screenshot.png"}, req.Files)

	_, err = b.Upload(1, "")
	assert.ErrorIs(t, err, request.ErrInvalidArgument)
}

func TestBuilder_InvalidArguments(t *testing.T) {
	var b Builder

	tests := []struct {
		name  string
		build func() (*request.Request, error)
	}{
		{name: "show nil id", build: func() (*request.Request, error) { return b.Show(nil) }},
		{name: "show empty id", build: func() (*request.Request, error) { return b.Show("") }},
		{name: "show zero id", build: func() (*request.Request, error) { return b.Show(0) }},
		{name: "show unsupported id", build: func() (*request.Request, error) { return b.Show(1.5) }},
		{name: "show dot dot", build: func() (*request.Request, error) { return b.Show("..") }},
		{name: "hook dot", build: func() (*request.Request, error) { return b.Hook(1, ".") }},
		{name: "search empty query", build: func() (*request.Request, error) { return b.Search("", nil) }},
		{name: "create empty name", build: func() (*request.Request, error) { return b.Create("", nil) }},
		{name: "create for nil user", build: func() (*request.Request, error) { return b.CreateForUser(nil, "x", nil) }},
		{name: "member without user", build: func() (*request.Request, error) { return b.Member(1, nil) }},
		{name: "add member without access", build: func() (*request.Request, error) { return b.AddMember(1, 2, 0) }},
		{name: "add member without user", build: func() (*request.Request, error) { return b.AddMember(1, "", GuestAccess) }},
		{name: "save member without access", build: func() (*request.Request, error) { return b.SaveMember(1, 2, 0) }},
		{name: "share without group", build: func() (*request.Request, error) { return b.Share(1, nil, GuestAccess, nil) }},
		{name: "share without access", build: func() (*request.Request, error) { return b.Share(1, 9, 0, nil) }},
		{name: "hook without id", build: func() (*request.Request, error) { return b.Hook(1, -1) }},
		{name: "add key without title", build: func() (*request.Request, error) { return b.AddKey(1, "", "k") }},
		{name: "add key without key", build: func() (*request.Request, error) { return b.AddKey(1, "t", "") }},
		{name: "remove label without name", build: func() (*request.Request, error) { return b.RemoveLabel(1, "") }},
		{name: "service without name", build: func() (*request.Request, error) { return b.RemoveService(1, "") }},
		{name: "status without sha", build: func() (*request.Request, error) { return b.CreateStatus(1, "", "success", nil) }},
		{name: "status without state", build: func() (*request.Request, error) { return b.CreateStatus(1, "abc", "", nil) }},
		{name: "fork relation without source", build: func() (*request.Request, error) { return b.CreateForkRelation(1, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := tt.build()
			require.ErrorIs(t, err, request.ErrInvalidArgument)
			assert.Nil(t, req)
		})
	}
}
