package main

import (
	"context"

	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/projects"
	"github.com/ethpandaops/glprojects/pkg/request"
	"github.com/spf13/cobra"
)

func newMembersCmd(a *app) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "members PROJECT [USER]",
		Short: "List project members, or show one member",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var usernameQuery *string
			if cmd.Flags().Changed("query") {
				usernameQuery = request.Ptr(query)
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if len(args) == 2 {
					return svc.Member(ctx, parseID(args[0]), parseID(args[1]))
				}

				return svc.Members(ctx, parseID(args[0]), usernameQuery)
			})
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Filter members by username")

	var access int

	add := &cobra.Command{
		Use:   "add PROJECT USER",
		Short: "Add a project member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.AddMember(ctx, parseID(args[0]), parseID(args[1]), projects.AccessLevel(access))
			})
		},
	}
	add.Flags().IntVar(&access, "access", int(projects.DeveloperAccess), "Access level (10, 20, 30, 40, 50)")

	save := &cobra.Command{
		Use:   "save PROJECT USER",
		Short: "Change the access level of a project member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.SaveMember(ctx, parseID(args[0]), parseID(args[1]), projects.AccessLevel(access))
			})
		},
	}
	save.Flags().IntVar(&access, "access", int(projects.DeveloperAccess), "Access level (10, 20, 30, 40, 50)")

	remove := &cobra.Command{
		Use:   "remove PROJECT USER",
		Short: "Remove a project member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.RemoveMember(ctx, parseID(args[0]), parseID(args[1]))
			})
		},
	}

	cmd.AddCommand(add, save, remove)

	return cmd
}

func newHooksCmd(a *app) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "hooks PROJECT [HOOK]",
		Short: "List project hooks, or show one hook",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.list(cmd)

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if len(args) == 2 {
					return svc.Hook(ctx, parseID(args[0]), parseID(args[1]))
				}

				return svc.Hooks(ctx, parseID(args[0]), &opts)
			})
		},
	}

	flags.bind(cmd, false)

	var params []string

	add := &cobra.Command{
		Use:   "add PROJECT URL",
		Short: "Add a project hook (push events only unless parameters say otherwise)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseParams(params)
			if err != nil {
				return err
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.AddHook(ctx, parseID(args[0]), args[1], &projects.HookOptions{Extra: extra})
			})
		},
	}
	add.Flags().StringArrayVarP(&params, "param", "p", nil, "Hook parameter as key=value (repeatable)")

	update := &cobra.Command{
		Use:   "update PROJECT HOOK",
		Short: "Update a project hook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := parseParams(params)
			if err != nil {
				return err
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.UpdateHook(ctx, parseID(args[0]), parseID(args[1]), &projects.HookOptions{Extra: extra})
			})
		},
	}
	update.Flags().StringArrayVarP(&params, "param", "p", nil, "Hook parameter as key=value (repeatable)")

	remove := &cobra.Command{
		Use:   "remove PROJECT HOOK",
		Short: "Delete a project hook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.RemoveHook(ctx, parseID(args[0]), parseID(args[1]))
			})
		},
	}

	cmd.AddCommand(add, update, remove)

	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys PROJECT [KEY]",
		Short: "List deploy keys, or show one key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				if len(args) == 2 {
					return svc.Key(ctx, parseID(args[0]), parseID(args[1]))
				}

				return svc.Keys(ctx, parseID(args[0]))
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add PROJECT TITLE KEY",
			Short: "Add a deploy key",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
					return svc.AddKey(ctx, parseID(args[0]), args[1], args[2])
				})
			},
		},
		&cobra.Command{
			Use:   "remove PROJECT KEY",
			Short: "Delete a deploy key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
					return svc.RemoveKey(ctx, parseID(args[0]), parseID(args[1]))
				})
			},
		},
	)

	return cmd
}

// labelFlags binds the label fields shared by add and update.
type labelFlags struct {
	name        string
	newName     string
	color       string
	description string
}

func (f *labelFlags) bind(cmd *cobra.Command, rename bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "Label name")
	cmd.Flags().StringVar(&f.color, "color", "", "Label color (#RRGGBB)")
	cmd.Flags().StringVar(&f.description, "description", "", "Label description")

	if rename {
		cmd.Flags().StringVar(&f.newName, "new-name", "", "New label name")
	}
}

func (f *labelFlags) options(cmd *cobra.Command) *projects.LabelOptions {
	opts := &projects.LabelOptions{}

	if cmd.Flags().Changed("name") {
		opts.Name = request.Ptr(f.name)
	}

	if cmd.Flags().Changed("new-name") {
		opts.NewName = request.Ptr(f.newName)
	}

	if cmd.Flags().Changed("color") {
		opts.Color = request.Ptr(f.color)
	}

	if cmd.Flags().Changed("description") {
		opts.Description = request.Ptr(f.description)
	}

	return opts
}

func newLabelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels PROJECT",
		Short: "List project labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.Labels(ctx, parseID(args[0]))
			})
		},
	}

	var addFlags, updateFlags labelFlags

	add := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Create a label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := addFlags.options(cmd)

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.AddLabel(ctx, parseID(args[0]), opts)
			})
		},
	}
	addFlags.bind(add, false)

	update := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a label selected by --name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := updateFlags.options(cmd)

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.UpdateLabel(ctx, parseID(args[0]), opts)
			})
		},
	}
	updateFlags.bind(update, true)

	remove := &cobra.Command{
		Use:   "remove PROJECT NAME",
		Short: "Delete a label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.RemoveLabel(ctx, parseID(args[0]), args[1])
			})
		},
	}

	cmd.AddCommand(add, update, remove)

	return cmd
}

func newServicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Configure project services",
	}

	var params []string

	set := &cobra.Command{
		Use:   "set PROJECT SERVICE",
		Short: "Configure a service such as slack or jira",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseParams(params)
			if err != nil {
				return err
			}

			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.SetService(ctx, parseID(args[0]), args[1], projects.ServiceOptions(opts))
			})
		},
	}
	set.Flags().StringArrayVarP(&params, "param", "p", nil, "Service setting as key=value (repeatable)")

	remove := &cobra.Command{
		Use:   "remove PROJECT SERVICE",
		Short: "Disable a service",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
				return svc.RemoveService(ctx, parseID(args[0]), args[1])
			})
		},
	}

	cmd.AddCommand(set, remove)

	return cmd
}

func newForkRelationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fork-relation",
		Short: "Manage fork relations (admin only)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create PROJECT FORKED_FROM",
			Short: "Mark a project as a fork of another",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
					return svc.CreateForkRelation(ctx, parseID(args[0]), parseID(args[1]))
				})
			},
		},
		&cobra.Command{
			Use:   "remove PROJECT",
			Short: "Remove the fork relation of a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd.Context(), func(ctx context.Context, svc projects.Service) (*gitlab.Response, error) {
					return svc.RemoveForkRelation(ctx, parseID(args[0]))
				})
			},
		},
	)

	return cmd
}
