package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/projects"
	"github.com/ethpandaops/glprojects/pkg/request"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	assert.Equal(t, 42, parseID("42"))
	assert.Equal(t, "group/proj", parseID("group/proj"))
	assert.Equal(t, "", parseID(""))
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"name=x", "tag=a", "tag=b", "tag=c", "empty="})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"name":  "x",
		"tag":   []string{"a", "b", "c"},
		"empty": "",
	}, params)

	params, err = parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, params)

	_, err = parseParams([]string{"novalue"})
	require.Error(t, err)

	_, err = parseParams([]string{"=x"})
	require.Error(t, err)
}

func newDryRunApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()

	log, _ := test.NewNullLogger()
	out := &bytes.Buffer{}

	return &app{log: log, out: out, dryRun: true}, out
}

func TestApp_DryRunPrintsRequests(t *testing.T) {
	a, out := newDryRunApp(t)

	err := a.run(context.Background(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
		return svc.Show(ctx, "group/proj")
	})
	require.NoError(t, err)

	err = a.run(context.Background(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
		return svc.AddHook(ctx, 1, "http://hook", nil)
	})
	require.NoError(t, err)

	err = a.run(context.Background(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
		return svc.Upload(ctx, 1, "/tmp/a.png")
	})
	require.NoError(t, err)

	assert.Equal(t,
		"GET projects/group%2Fproj\n"+
			"POST projects/1/hooks body=push_events=true&url=http%3A%2F%2Fhook\n"+
			"POST projects/1/uploads file[file]=/tmp/a.png\n",
		out.String())
}

func TestApp_DryRunRejectsInvalidArguments(t *testing.T) {
	a, out := newDryRunApp(t)

	err := a.run(context.Background(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
		return svc.Show(ctx, "")
	})
	require.ErrorIs(t, err, request.ErrInvalidArgument)
	assert.Empty(t, out.String())
}

func TestApp_PrintIndentsJSON(t *testing.T) {
	a, out := newDryRunApp(t)

	require.NoError(t, a.print(&gitlab.Response{Body: []byte(`{"id":1}`)}))
	require.NoError(t, a.print(&gitlab.Response{Body: []byte("build log")}))
	require.NoError(t, a.print(nil))

	assert.Equal(t, "{\n  \"id\": 1\n}\nbuild log\n", out.String())
}

func runListCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	a, out := newDryRunApp(t)

	cmd := newListCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestListCmd_StarredFilters(t *testing.T) {
	got, err := runListCmd(t, "--scope", "starred", "--archived=false", "--visibility", "private")
	require.NoError(t, err)
	assert.Equal(t,
		"GET projects/starred?archived=false&order_by=created_at&page=1&per_page=20&sort=asc&visibility=private\n",
		got)

	got, err = runListCmd(t, "--scope", "starred", "--search", "ops", "--sort", "desc")
	require.NoError(t, err)
	assert.Equal(t,
		"GET projects/starred?order_by=created_at&page=1&per_page=20&search=ops&sort=desc\n",
		got)
}

func TestListCmd_StarredFiltersRequireStarredScope(t *testing.T) {
	got, err := runListCmd(t, "--scope", "owned", "--search", "ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--search requires --scope starred")
	assert.Empty(t, got)

	got, err = runListCmd(t, "--scope", "owned")
	require.NoError(t, err)
	assert.Equal(t, "GET projects/owned?order_by=created_at&page=1&per_page=20&sort=asc\n", got)
}
