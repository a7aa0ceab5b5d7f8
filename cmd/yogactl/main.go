// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/yoga-journal/catalog"
	"github.com/danielhkuo/yoga-journal/db"
	"github.com/danielhkuo/yoga-journal/models"
	"github.com/danielhkuo/yoga-journal/plan"
	"github.com/danielhkuo/yoga-journal/practice"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: failed to load .env:", err)
	}
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yogactl",
		Short:         "Operator tools for the yoga-journal server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSeedCmd())
	root.AddCommand(newPlanCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func newSeedCmd() *cobra.Command {
	var dbType, dbURL string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and upsert the pose catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbURL == "" {
				dbURL = os.Getenv("DATABASE_URL")
			}
			if dbURL == "" {
				return errors.New("database URL required (use --db or DATABASE_URL env)")
			}
			if dbType == "" {
				dbType = os.Getenv("DATABASE_TYPE")
			}
			if dbType == "" {
				dbType = db.TypeSQLite
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			conn, err := db.Open(ctx, dbType, dbURL)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.CreateSchema(ctx, conn); err != nil {
				return err
			}
			n, err := db.SeedPoses(ctx, conn, catalog.Default())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d poses (catalog v%d)\n", n, catalog.Default().Version())
			return nil
		},
	}
	cmd.Flags().StringVarP(&dbType, "type", "t", "", "database type: sqlite|postgres")
	cmd.Flags().StringVarP(&dbURL, "db", "d", "", "database URL")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var (
		practiceType                    string
		primaryUpTo, interUpTo, advUpTo string
		blocks                          []string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the poses a practice expands to",
		Example: `  yogactl plan --type HALF_PRIMARY --primary-up-to navasana
  yogactl plan --type CUSTOM --block PRIMARY:marichyasana-a..navasana --block INTERMEDIATE=ustrasana,kapotasana-a`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := selectionFromFlags(practiceType, primaryUpTo, interUpTo, advUpTo, blocks)
			if err != nil {
				return err
			}
			items, err := plan.Expand(catalog.Default(), sel)
			if err != nil {
				return err
			}
			return printPlan(cmd, sel, items)
		},
	}
	cmd.Flags().StringVar(&practiceType, "type", "", "practice type (default FULL_PRIMARY, or CUSTOM with --block)")
	cmd.Flags().StringVar(&primaryUpTo, "primary-up-to", "", "last primary pose (slug or name)")
	cmd.Flags().StringVar(&interUpTo, "intermediate-up-to", "", "last intermediate pose (slug or name)")
	cmd.Flags().StringVar(&advUpTo, "advanced-up-to", "", "last advanced pose (slug or name)")
	cmd.Flags().StringArrayVar(&blocks, "block", nil, "custom block: SEGMENT, SEGMENT:FROM..UPTO or SEGMENT=slug,slug")
	return cmd
}

func selectionFromFlags(practiceType, primaryUpTo, interUpTo, advUpTo string, blocks []string) (plan.Selection, error) {
	pt := models.PracticeType(strings.ToUpper(strings.TrimSpace(practiceType)))
	switch {
	case pt == "" && len(blocks) > 0:
		pt = models.PracticeCustom
	case pt == "":
		pt = models.PracticeFullPrimary
	case len(blocks) > 0 && pt != models.PracticeCustom:
		return plan.Selection{}, fmt.Errorf("--block needs --type CUSTOM, got %s", pt)
	}

	if pt == models.PracticeCustom {
		custom := make([]models.CustomBlock, 0, len(blocks))
		for _, raw := range blocks {
			b, err := parseBlock(raw)
			if err != nil {
				return plan.Selection{}, err
			}
			custom = append(custom, b)
		}
		return practice.CustomSelection(custom), nil
	}

	return practice.PresetSelection(models.CreatePresetSessionRequest{
		PracticeType:     pt,
		PrimaryUpTo:      primaryUpTo,
		IntermediateUpTo: interUpTo,
		AdvancedUpTo:     advUpTo,
	})
}

// parseBlock reads SEGMENT, SEGMENT:FROM..UPTO (either bound may be empty)
// or SEGMENT=slug,slug.
func parseBlock(raw string) (models.CustomBlock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.CustomBlock{}, errors.New("empty --block")
	}

	if seg, list, ok := strings.Cut(raw, "="); ok {
		var slugs []string
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				slugs = append(slugs, s)
			}
		}
		if len(slugs) == 0 {
			return models.CustomBlock{}, fmt.Errorf("block %q lists no poses", raw)
		}
		return models.CustomBlock{Segment: segmentArg(seg), Slugs: slugs}, nil
	}

	seg, bounds, ok := strings.Cut(raw, ":")
	b := models.CustomBlock{Segment: segmentArg(seg)}
	if !ok {
		return b, nil
	}
	from, upTo, ok := strings.Cut(bounds, "..")
	if !ok {
		return models.CustomBlock{}, fmt.Errorf("block %q: range must be FROM..UPTO", raw)
	}
	b.FromSlug = strings.TrimSpace(from)
	b.UpToSlug = strings.TrimSpace(upTo)
	return b, nil
}

func segmentArg(s string) models.Segment {
	return models.Segment(strings.ToUpper(strings.TrimSpace(s)))
}

func printPlan(cmd *cobra.Command, sel plan.Selection, items []plan.Item) error {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s: %d poses, %d score cards\n\n", plan.DefaultLabel(sel), len(items), plan.CardCount(items))

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tSEGMENT\tSLUG\tPOSE\tSIDES")
	for i, it := range items {
		sides := "1"
		if it.TwoSided {
			sides = "2"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, it.Segment, it.PoseSlug, it.PoseName, sides)
	}
	return tw.Flush()
}

func newCatalogCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog groups and pre-composed series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := catalog.Default()
			out := cmd.OutOrStdout()

			if group != "" {
				g := catalog.Group(strings.ToUpper(strings.TrimSpace(group)))
				entries := cat.Group(g)
				if len(entries) == 0 {
					return fmt.Errorf("%w: %s", catalog.ErrUnknownGroup, group)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "#\tSLUG\tPOSE\tTWO-SIDED")
				for i, e := range entries {
					_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", i+1, e.Slug(), e.Name, e.TwoSided)
				}
				return tw.Flush()
			}

			_, _ = fmt.Fprintf(out, "catalog v%d, %d poses\n\n", cat.Version(), cat.Len())
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "GROUP\tPOSES")
			for _, g := range catalog.Groups {
				_, _ = fmt.Fprintf(tw, "%s\t%d\n", g, len(cat.Group(g)))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			series := cat.Series()
			if len(series) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(out, "\nseries:")
			for _, s := range series {
				_, _ = fmt.Fprintf(out, "  %s (%d poses): %s\n", s.Name, len(s.Poses), s.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&group, "group", "g", "", "list the poses of one group")
	return cmd
}
