package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/bloglist/internal/app"
	"github.com/five82/bloglist/internal/blog"
)

func newPostsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "posts",
		Short: "List blogs, most liked first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Service.LoadPosts(cmd.Context()); err != nil {
				return result(a, err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLIKES\tTITLE\tAUTHOR")
			for _, p := range blog.SortByLikes(a.Stores.Posts.All()) {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", p.ID, p.Likes, p.Title, p.Author)
			}
			return w.Flush()
		},
	}
}

func newPostCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "post <id>",
		Short: "Show one blog with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadPosts(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			p, ok := a.Stores.Posts.Get(args[0])
			if !ok {
				return fmt.Errorf("post %q: %w", args[0], blog.ErrNotFound)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n%s\n%d likes\n", p.Title, p.Author, p.URL, p.Likes)
			if owner := p.OwnerName(); owner != "" {
				fmt.Fprintf(out, "added by %s\n", owner)
			}
			fmt.Fprintln(out, "\ncomments")
			for _, c := range p.Comments {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			return nil
		},
	}
}

func newCreateCmd(flags *globalFlags) *cobra.Command {
	var in blog.NewPost
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new blog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if _, ok := a.Service.CurrentSession(); !ok {
				return errNotLoggedIn
			}
			created, err := a.Service.CreatePost(cmd.Context(), in)
			if err != nil {
				return result(a, err)
			}
			printNotification(cmd, a)
			fmt.Fprintf(cmd.OutOrStdout(), "id: %s\n", created.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "blog title")
	f.StringVar(&in.Author, "author", "", "blog author")
	f.StringVar(&in.URL, "url", "", "blog url")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newLikeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>",
		Short: "Like a blog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadPosts(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.Service.LikePost(cmd.Context(), args[0])
			if err != nil {
				return result(a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d likes\n", p.Title, p.Likes)
			return nil
		},
	}
}

func newCommentCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text...>",
		Short: "Add an anonymous comment to a blog",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadPosts(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.Service.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return result(a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d comments\n", p.Title, len(p.Comments))
			return nil
		},
	}
}

func newDeleteCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a blog after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadPosts(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			confirm := blog.AutoConfirm
			if !yes {
				confirm = func(prompt string) bool {
					fmt.Fprintf(promptWriter(cmd), "%s? [y/N] ", prompt)
					answer, err := readLine(cmd.InOrStdin())
					if err != nil {
						return false
					}
					answer = strings.ToLower(strings.TrimSpace(answer))
					return answer == "y" || answer == "yes"
				}
			}

			err = a.Service.DeletePost(cmd.Context(), args[0], confirm)
			if errors.Is(err, blog.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
				return nil
			}
			if err != nil {
				return result(a, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newAuthorsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "authors",
		Aliases: []string{"users"},
		Short:   "List users and how many blogs each created",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := flags.open()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Service.LoadAuthors(cmd.Context()); err != nil {
				return result(a, err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUSERNAME\tBLOGS")
			for _, au := range a.Stores.Authors.All() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", au.Name, au.Username, len(au.Posts))
			}
			return w.Flush()
		},
	}
}

// loadPosts opens the app and fills the post store, which every per-post
// action reads from.
func loadPosts(cmd *cobra.Command, flags *globalFlags) (*app.App, error) {
	a, err := flags.open()
	if err != nil {
		return nil, err
	}
	if err := a.Service.LoadPosts(cmd.Context()); err != nil {
		err = result(a, err)
		a.Close()
		return nil, err
	}
	return a, nil
}

func printNotification(cmd *cobra.Command, a *app.App) {
	if n, ok := a.Stores.Notification.Current(); ok {
		fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	}
}
