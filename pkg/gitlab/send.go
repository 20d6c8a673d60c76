package gitlab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethpandaops/glprojects/pkg/request"
)

// Send hands a request descriptor to the transport verb matching its method.
func Send(ctx context.Context, t Transport, req *request.Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", request.ErrInvalidArgument)
	}

	switch req.Method {
	case http.MethodGet:
		return t.Get(ctx, req.Path, req.Query)
	case http.MethodDelete:
		return t.Delete(ctx, req.Path, req.Query)
	case http.MethodPut:
		return t.Put(ctx, req.Path, req.Body)
	case http.MethodPost:
		if len(req.Files) > 0 {
			return t.Upload(ctx, req.Path, req.Body, req.Files)
		}

		return t.Post(ctx, req.Path, req.Body)
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", request.ErrInvalidArgument, req.Method)
	}
}
