package main

import (
	"context"
	"fmt"

	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/projects"
	"github.com/ethpandaops/glprojects/pkg/request"
	"github.com/spf13/cobra"
)

// listFlags binds paging and ordering flags. Only flags set on the command
// line are forwarded so the list defaults apply to the rest.
type listFlags struct {
	page    int
	perPage int
	orderBy string
	sort    string
}

func (f *listFlags) bind(cmd *cobra.Command, sortable bool) {
	cmd.Flags().IntVar(&f.page, "page", request.DefaultPage, "Page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", request.DefaultPerPage, "Items per page")

	if sortable {
		cmd.Flags().StringVar(&f.orderBy, "order-by", request.DefaultOrderBy, "Order by field")
		cmd.Flags().StringVar(&f.sort, "sort", request.DefaultSort, "Sort direction (asc, desc)")
	}
}

func (f *listFlags) list(cmd *cobra.Command) request.ListOptions {
	var o request.ListOptions

	if cmd.Flags().Changed("page") {
		o.Page = request.Ptr(f.page)
	}

	if cmd.Flags().Changed("per-page") {
		o.PerPage = request.Ptr(f.perPage)
	}

	return o
}

func (f *listFlags) sorting(cmd *cobra.Command) request.SortOptions {
	var o request.SortOptions

	if cmd.Flags().Changed("order-by") {
		o.OrderBy = request.Ptr(f.orderBy)
	}

	if cmd.Flags().Changed("sort") {
		o.Sort = request.Ptr(f.sort)
	}

	return o
}

func (f *listFlags) projects(cmd *cobra.Command) *projects.ListProjectsOptions {
	return &projects.ListProjectsOptions{
		ListOptions: f.list(cmd),
		SortOptions: f.sorting(cmd),
	}
}

func newProjectCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newRemoveCmd(a),
		newForkCmd(a),
		newActionCmd(a, "star", "Star a project", projects.Service.Star),
		newActionCmd(a, "unstar", "Unstar a project", projects.Service.Unstar),
		newActionCmd(a, "archive", "Archive a project", projects.Service.Archive),
		newActionCmd(a, "unarchive", "Unarchive a project", projects.Service.Unarchive),
		newShareCmd(a),
		newUnshareCmd(a),
		newUploadCmd(a),
		newBuildsCmd(a),
		newEventsCmd(a),
		newStatusCmd(a),
	}
}

// starredFlags binds the filters only the starred list accepts.
type starredFlags struct {
	archived   bool
	visibility string
	search     string
}

var starredOnly = []string{"archived", "visibility", "search"}

func (f *starredFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.archived, "archived", false, "Limit by archived status (starred scope only)")
	cmd.Flags().StringVar(&f.visibility, "visibility", "", "Limit by visibility: public, internal, private (starred scope only)")
	cmd.Flags().StringVar(&f.search, "search", "", "Limit to projects matching this term (starred scope only)")
}

func (f *starredFlags) options(cmd *cobra.Command, list *projects.ListProjectsOptions) *projects.StarredOptions {
	opts := &projects.StarredOptions{
		ListOptions: list.ListOptions,
		SortOptions: list.SortOptions,
	}

	if cmd.Flags().Changed("archived") {
		opts.Archived = request.Ptr(f.archived)
	}

	if cmd.Flags().Changed("visibility") {
		opts.Visibility = request.Ptr(f.visibility)
	}

	if cmd.Flags().Changed("search") {
		opts.Search = request.Ptr(f.search)
	}

	return opts
}

func newListCmd(a *app) *cobra.Command {
	var (
		flags   listFlags
		starred starredFlags
		scope   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.projects(cmd)

			if scope != "starred" {
				for _, name := range starredOnly {
					if cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s requires --scope starred", name)
					}
				}
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				switch scope {
				case "accessible":
					return svc.Accessible(ctx, opts)
				case "owned":
					return svc.Owned(ctx, opts)
				case "all":
					return svc.All(ctx, opts)
				case "starred":
					return svc.Starred(ctx, starred.options(cmd, opts))
				default:
					return nil, fmt.Errorf("unknown scope %q", scope)
				}
			})
		},
	}

	flags.bind(cmd, true)
	starred.bind(cmd)
	cmd.Flags().StringVar(&scope, "scope", "accessible", "Which projects (accessible, owned, starred, all)")

	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search projects by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.projects(cmd)

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Search(ctx, args[0], opts)
			})
		},
	}

	flags.bind(cmd, true)

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Show(ctx, parseID(args[0]))
			})
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var (
		user        string
		description string
		params      []string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseParams(params)
			if err != nil {
				return err
			}

			opts := &projects.CreateOptions{Extra: extra}
			if cmd.Flags().Changed("description") {
				opts.Description = request.Ptr(description)
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if user != "" {
					return svc.CreateForUser(ctx, parseID(user), args[0], opts)
				}

				return svc.Create(ctx, args[0], opts)
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Create the project for this user (admin only)")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Extra parameter as key=value (repeatable)")

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update project settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseParams(params)
			if err != nil {
				return err
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Update(ctx, parseID(args[0]), &projects.UpdateOptions{Extra: extra})
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Parameter as key=value (repeatable)")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Remove(ctx, parseID(args[0]))
			})
		},
	}
}

func newForkCmd(a *app) *cobra.Command {
	var (
		namespace string
		admin     bool
	)

	cmd := &cobra.Command{
		Use:   "fork PROJECT",
		Short: "Fork a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &projects.ForkOptions{}
			if namespace != "" {
				opts.Namespace = request.Ptr(namespace)
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if admin {
					return svc.ForkByAdmin(ctx, parseID(args[0]), opts)
				}

				return svc.Fork(ctx, parseID(args[0]), opts)
			})
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace ID or path")
	cmd.Flags().BoolVar(&admin, "admin", false, "Use the admin fork endpoint")

	return cmd
}

// newActionCmd builds a command for an operation that takes only a project.
func newActionCmd(
	a *app,
	use, short string,
	op func(projects.Service, context.Context, any) (*gitlab.Response, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PROJECT",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return op(svc, ctx, parseID(args[0]))
			})
		},
	}
}

func newShareCmd(a *app) *cobra.Command {
	var (
		access    int
		expiresAt string
	)

	cmd := &cobra.Command{
		Use:   "share PROJECT GROUP",
		Short: "Share a project with a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &projects.ShareOptions{}
			if expiresAt != "" {
				opts.ExpiresAt = request.Ptr(expiresAt)
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Share(ctx, parseID(args[0]), parseID(args[1]), projects.AccessLevel(access), opts)
			})
		},
	}

	cmd.Flags().IntVar(&access, "access", int(projects.DeveloperAccess), "Group access level (10, 20, 30, 40, 50)")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "Share expiry date (YYYY-MM-DD)")

	return cmd
}

func newUnshareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unshare PROJECT GROUP",
		Short: "Stop sharing a project with a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Unshare(ctx, parseID(args[0]), parseID(args[1]))
			})
		},
	}
}

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload PROJECT FILE",
		Short: "Upload a file to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Upload(ctx, parseID(args[0]), args[1])
			})
		},
	}
}

func newBuildsCmd(a *app) *cobra.Command {
	var scope []string

	cmd := &cobra.Command{
		Use:   "builds PROJECT [BUILD]",
		Short: "List project builds, or show one build",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if len(args) == 2 {
					return svc.Build(ctx, parseID(args[0]), parseID(args[1]))
				}

				return svc.Builds(ctx, parseID(args[0]), scope...)
			})
		},
	}

	cmd.Flags().StringSliceVar(&scope, "scope", nil, "Build scopes (pending, running, failed, success, canceled)")

	cmd.AddCommand(&cobra.Command{
		Use:   "trace PROJECT BUILD",
		Short: "Print the log of a build",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Trace(ctx, parseID(args[0]), parseID(args[1]))
			})
		},
	})

	return cmd
}

func newEventsCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "events PROJECT",
		Short: "List project events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.list(cmd)

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Events(ctx, parseID(args[0]), &opts)
			})
		},
	}

	flags.bind(cmd, false)

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var (
		ref       string
		name      string
		targetURL string
		params    []string
	)

	cmd := &cobra.Command{
		Use:   "status PROJECT SHA STATE",
		Short: "Set the build status of a commit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseParams(params)
			if err != nil {
				return err
			}

			opts := &projects.StatusOptions{Extra: extra}
			if ref != "" {
				opts.Ref = request.Ptr(ref)
			}

			if name != "" {
				opts.Name = request.Ptr(name)
			}

			if targetURL != "" {
				opts.TargetURL = request.Ptr(targetURL)
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.CreateStatus(ctx, parseID(args[0]), args[1], args[2], opts)
			})
		},
	}

	cmd.Flags().StringVar(&ref, "ref", "", "Branch or tag the commit belongs to")
	cmd.Flags().StringVar(&name, "name", "", "Status name")
	cmd.Flags().StringVar(&targetURL, "target-url", "", "URL the status links to")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Extra parameter as key=value (repeatable)")

	return cmd
}
