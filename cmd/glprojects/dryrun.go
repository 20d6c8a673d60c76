package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/request"
)

// dryRunTransport prints each request instead of sending it.
type dryRunTransport struct {
	out io.Writer
}

var _ gitlab.Transport = (*dryRunTransport)(nil)

func newDryRunTransport(out io.Writer) *dryRunTransport {
	return &dryRunTransport{out: out}
}

func (d *dryRunTransport) Get(_ context.Context, path string, query url.Values) (*gitlab.Response, error) {
	return d.print(request.New(http.MethodGet, path, query))
}

func (d *dryRunTransport) Post(_ context.Context, path string, body url.Values) (*gitlab.Response, error) {
	return d.print(request.New(http.MethodPost, path, body))
}

func (d *dryRunTransport) Put(_ context.Context, path string, body url.Values) (*gitlab.Response, error) {
	return d.print(request.New(http.MethodPut, path, body))
}

func (d *dryRunTransport) Delete(_ context.Context, path string, query url.Values) (*gitlab.Response, error) {
	return d.print(request.New(http.MethodDelete, path, query))
}

func (d *dryRunTransport) Upload(
	_ context.Context,
	path string,
	body url.Values,
	files map[string]string,
) (*gitlab.Response, error) {
	req := request.New(http.MethodPost, path, body)
	req.Files = files

	return d.print(req)
}

func (d *dryRunTransport) print(req *request.Request) (*gitlab.Response, error) {
	if _, err := fmt.Fprintln(d.out, req.String()); err != nil {
		return nil, err
	}

	return &gitlab.Response{}, nil
}
