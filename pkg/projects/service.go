// Package projects binds the GitLab projects API: listing, creating and
// updating projects and managing their members, hooks, deploy keys, labels,
// services, builds and commit statuses.
package projects

import (
	"context"

	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/request"
	"github.com/sirupsen/logrus"
)

// Service defines the projects API operations. Every call builds one request
// and sends it through the transport; responses and transport errors are
// returned unchanged.
type Service interface {
	// Listing.
	All(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error)
	Accessible(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error)
	Owned(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error)
	Starred(ctx context.Context, opts *StarredOptions) (*gitlab.Response, error)
	Search(ctx context.Context, query string, opts *ListProjectsOptions) (*gitlab.Response, error)

	// Projects.
	Show(ctx context.Context, projectID any) (*gitlab.Response, error)
	Create(ctx context.Context, name string, opts *CreateOptions) (*gitlab.Response, error)
	CreateForUser(ctx context.Context, userID any, name string, opts *CreateOptions) (*gitlab.Response, error)
	Update(ctx context.Context, projectID any, opts *UpdateOptions) (*gitlab.Response, error)
	Remove(ctx context.Context, projectID any) (*gitlab.Response, error)

	// Actions.
	Fork(ctx context.Context, projectID any, opts *ForkOptions) (*gitlab.Response, error)
	ForkByAdmin(ctx context.Context, projectID any, opts *ForkOptions) (*gitlab.Response, error)
	Star(ctx context.Context, projectID any) (*gitlab.Response, error)
	Unstar(ctx context.Context, projectID any) (*gitlab.Response, error)
	Archive(ctx context.Context, projectID any) (*gitlab.Response, error)
	Unarchive(ctx context.Context, projectID any) (*gitlab.Response, error)
	Share(ctx context.Context, projectID, groupID any, access AccessLevel, opts *ShareOptions) (*gitlab.Response, error)
	Unshare(ctx context.Context, projectID, groupID any) (*gitlab.Response, error)
	Upload(ctx context.Context, projectID any, filePath string) (*gitlab.Response, error)

	// Builds.
	Builds(ctx context.Context, projectID any, scope ...string) (*gitlab.Response, error)
	Build(ctx context.Context, projectID, buildID any) (*gitlab.Response, error)
	Trace(ctx context.Context, projectID, buildID any) (*gitlab.Response, error)

	// Members.
	Members(ctx context.Context, projectID any, usernameQuery *string) (*gitlab.Response, error)
	Member(ctx context.Context, projectID, userID any) (*gitlab.Response, error)
	AddMember(ctx context.Context, projectID, userID any, access AccessLevel) (*gitlab.Response, error)
	SaveMember(ctx context.Context, projectID, userID any, access AccessLevel) (*gitlab.Response, error)
	RemoveMember(ctx context.Context, projectID, userID any) (*gitlab.Response, error)

	// Hooks.
	Hooks(ctx context.Context, projectID any, opts *request.ListOptions) (*gitlab.Response, error)
	Hook(ctx context.Context, projectID, hookID any) (*gitlab.Response, error)
	AddHook(ctx context.Context, projectID any, hookURL string, opts *HookOptions) (*gitlab.Response, error)
	UpdateHook(ctx context.Context, projectID, hookID any, opts *HookOptions) (*gitlab.Response, error)
	RemoveHook(ctx context.Context, projectID, hookID any) (*gitlab.Response, error)

	// Deploy keys.
	Keys(ctx context.Context, projectID any) (*gitlab.Response, error)
	Key(ctx context.Context, projectID, keyID any) (*gitlab.Response, error)
	AddKey(ctx context.Context, projectID any, title, key string) (*gitlab.Response, error)
	RemoveKey(ctx context.Context, projectID, keyID any) (*gitlab.Response, error)

	// Events.
	Events(ctx context.Context, projectID any, opts *request.ListOptions) (*gitlab.Response, error)

	// Labels.
	Labels(ctx context.Context, projectID any) (*gitlab.Response, error)
	AddLabel(ctx context.Context, projectID any, opts *LabelOptions) (*gitlab.Response, error)
	UpdateLabel(ctx context.Context, projectID any, opts *LabelOptions) (*gitlab.Response, error)
	RemoveLabel(ctx context.Context, projectID any, name string) (*gitlab.Response, error)

	// Fork relations.
	CreateForkRelation(ctx context.Context, projectID, forkedFromID any) (*gitlab.Response, error)
	RemoveForkRelation(ctx context.Context, projectID any) (*gitlab.Response, error)

	// Services.
	SetService(ctx context.Context, projectID any, serviceName string, opts ServiceOptions) (*gitlab.Response, error)
	RemoveService(ctx context.Context, projectID any, serviceName string) (*gitlab.Response, error)

	// Statuses.
	CreateStatus(ctx context.Context, projectID any, sha, state string, opts *StatusOptions) (*gitlab.Response, error)
}

// service implements Service.
type service struct {
	log       logrus.FieldLogger
	transport gitlab.Transport
	build     Builder
}

// Ensure service implements Service.
var _ Service = (*service)(nil)

// NewService creates a projects service sending through t.
func NewService(log logrus.FieldLogger, t gitlab.Transport) Service {
	return &service{
		log:       log.WithField("component", "projects"),
		transport: t,
	}
}

// send forwards a built request, or the error that prevented building it.
func (s *service) send(ctx context.Context, req *request.Request, err error) (*gitlab.Response, error) {
	if err != nil {
		s.log.WithError(err).Debug("Rejected projects request")

		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path,
	}).Debug("Sending projects request")

	return gitlab.Send(ctx, s.transport, req)
}

func (s *service) All(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error) {
	req, err := s.build.All(opts)

	return s.send(ctx, req, err)
}

func (s *service) Accessible(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error) {
	req, err := s.build.Accessible(opts)

	return s.send(ctx, req, err)
}

func (s *service) Owned(ctx context.Context, opts *ListProjectsOptions) (*gitlab.Response, error) {
	req, err := s.build.Owned(opts)

	return s.send(ctx, req, err)
}

func (s *service) Starred(ctx context.Context, opts *StarredOptions) (*gitlab.Response, error) {
	req, err := s.build.Starred(opts)

	return s.send(ctx, req, err)
}

func (s *service) Search(ctx context.Context, query string, opts *ListProjectsOptions) (*gitlab.Response, error) {
	req, err := s.build.Search(query, opts)

	return s.send(ctx, req, err)
}

func (s *service) Show(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Show(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Create(ctx context.Context, name string, opts *CreateOptions) (*gitlab.Response, error) {
	req, err := s.build.Create(name, opts)

	return s.send(ctx, req, err)
}

func (s *service) CreateForUser(ctx context.Context, userID any, name string, opts *CreateOptions) (*gitlab.Response, error) {
	req, err := s.build.CreateForUser(userID, name, opts)

	return s.send(ctx, req, err)
}

func (s *service) Update(ctx context.Context, projectID any, opts *UpdateOptions) (*gitlab.Response, error) {
	req, err := s.build.Update(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) Remove(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Remove(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Fork(ctx context.Context, projectID any, opts *ForkOptions) (*gitlab.Response, error) {
	req, err := s.build.Fork(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) ForkByAdmin(ctx context.Context, projectID any, opts *ForkOptions) (*gitlab.Response, error) {
	req, err := s.build.ForkByAdmin(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) Star(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Star(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Unstar(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Unstar(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Archive(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Archive(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Unarchive(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Unarchive(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Share(
	ctx context.Context,
	projectID, groupID any,
	access AccessLevel,
	opts *ShareOptions,
) (*gitlab.Response, error) {
	req, err := s.build.Share(projectID, groupID, access, opts)

	return s.send(ctx, req, err)
}

func (s *service) Unshare(ctx context.Context, projectID, groupID any) (*gitlab.Response, error) {
	req, err := s.build.Unshare(projectID, groupID)

	return s.send(ctx, req, err)
}

func (s *service) Upload(ctx context.Context, projectID any, filePath string) (*gitlab.Response, error) {
	req, err := s.build.Upload(projectID, filePath)

	return s.send(ctx, req, err)
}

func (s *service) Builds(ctx context.Context, projectID any, scope ...string) (*gitlab.Response, error) {
	req, err := s.build.Builds(projectID, scope...)

	return s.send(ctx, req, err)
}

func (s *service) Build(ctx context.Context, projectID, buildID any) (*gitlab.Response, error) {
	req, err := s.build.Build(projectID, buildID)

	return s.send(ctx, req, err)
}

func (s *service) Trace(ctx context.Context, projectID, buildID any) (*gitlab.Response, error) {
	req, err := s.build.Trace(projectID, buildID)

	return s.send(ctx, req, err)
}

func (s *service) Members(ctx context.Context, projectID any, usernameQuery *string) (*gitlab.Response, error) {
	req, err := s.build.Members(projectID, usernameQuery)

	return s.send(ctx, req, err)
}

func (s *service) Member(ctx context.Context, projectID, userID any) (*gitlab.Response, error) {
	req, err := s.build.Member(projectID, userID)

	return s.send(ctx, req, err)
}

func (s *service) AddMember(ctx context.Context, projectID, userID any, access AccessLevel) (*gitlab.Response, error) {
	req, err := s.build.AddMember(projectID, userID, access)

	return s.send(ctx, req, err)
}

func (s *service) SaveMember(ctx context.Context, projectID, userID any, access AccessLevel) (*gitlab.Response, error) {
	req, err := s.build.SaveMember(projectID, userID, access)

	return s.send(ctx, req, err)
}

func (s *service) RemoveMember(ctx context.Context, projectID, userID any) (*gitlab.Response, error) {
	req, err := s.build.RemoveMember(projectID, userID)

	return s.send(ctx, req, err)
}

func (s *service) Hooks(ctx context.Context, projectID any, opts *request.ListOptions) (*gitlab.Response, error) {
	req, err := s.build.Hooks(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) Hook(ctx context.Context, projectID, hookID any) (*gitlab.Response, error) {
	req, err := s.build.Hook(projectID, hookID)

	return s.send(ctx, req, err)
}

func (s *service) AddHook(ctx context.Context, projectID any, hookURL string, opts *HookOptions) (*gitlab.Response, error) {
	req, err := s.build.AddHook(projectID, hookURL, opts)

	return s.send(ctx, req, err)
}

func (s *service) UpdateHook(ctx context.Context, projectID, hookID any, opts *HookOptions) (*gitlab.Response, error) {
	req, err := s.build.UpdateHook(projectID, hookID, opts)

	return s.send(ctx, req, err)
}

func (s *service) RemoveHook(ctx context.Context, projectID, hookID any) (*gitlab.Response, error) {
	req, err := s.build.RemoveHook(projectID, hookID)

	return s.send(ctx, req, err)
}

func (s *service) Keys(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Keys(projectID)

	return s.send(ctx, req, err)
}

func (s *service) Key(ctx context.Context, projectID, keyID any) (*gitlab.Response, error) {
	req, err := s.build.Key(projectID, keyID)

	return s.send(ctx, req, err)
}

func (s *service) AddKey(ctx context.Context, projectID any, title, key string) (*gitlab.Response, error) {
	req, err := s.build.AddKey(projectID, title, key)

	return s.send(ctx, req, err)
}

func (s *service) RemoveKey(ctx context.Context, projectID, keyID any) (*gitlab.Response, error) {
	req, err := s.build.RemoveKey(projectID, keyID)

	return s.send(ctx, req, err)
}

func (s *service) Events(ctx context.Context, projectID any, opts *request.ListOptions) (*gitlab.Response, error) {
	req, err := s.build.Events(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) Labels(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.Labels(projectID)

	return s.send(ctx, req, err)
}

func (s *service) AddLabel(ctx context.Context, projectID any, opts *LabelOptions) (*gitlab.Response, error) {
	req, err := s.build.AddLabel(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) UpdateLabel(ctx context.Context, projectID any, opts *LabelOptions) (*gitlab.Response, error) {
	req, err := s.build.UpdateLabel(projectID, opts)

	return s.send(ctx, req, err)
}

func (s *service) RemoveLabel(ctx context.Context, projectID any, name string) (*gitlab.Response, error) {
	req, err := s.build.RemoveLabel(projectID, name)

	return s.send(ctx, req, err)
}

func (s *service) CreateForkRelation(ctx context.Context, projectID, forkedFromID any) (*gitlab.Response, error) {
	req, err := s.build.CreateForkRelation(projectID, forkedFromID)

	return s.send(ctx, req, err)
}

func (s *service) RemoveForkRelation(ctx context.Context, projectID any) (*gitlab.Response, error) {
	req, err := s.build.RemoveForkRelation(projectID)

	return s.send(ctx, req, err)
}

func (s *service) SetService(
	ctx context.Context,
	projectID any,
	serviceName string,
	opts ServiceOptions,
) (*gitlab.Response, error) {
	req, err := s.build.SetService(projectID, serviceName, opts)

	return s.send(ctx, req, err)
}

func (s *service) RemoveService(ctx context.Context, projectID any, serviceName string) (*gitlab.Response, error) {
	req, err := s.build.RemoveService(projectID, serviceName)

	return s.send(ctx, req, err)
}

func (s *service) CreateStatus(
	ctx context.Context,
	projectID any,
	sha, state string,
	opts *StatusOptions,
) (*gitlab.Response, error) {
	req, err := s.build.CreateStatus(projectID, sha, state, opts)

	return s.send(ctx, req, err)
}
